// Copyright 2024 Lei Ni (nilei81@gmail.com) and other contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package logger manages loggers used in the intervals library.
*/
package logger

import (
	"fmt"
	"log"
	"sync"
)

// LogLevel is the log level used by the library.
type LogLevel int

const (
	// CRITICAL is the CRITICAL log level
	CRITICAL LogLevel = iota - 1
	// ERROR is the ERROR log level
	ERROR
	// WARNING is the WARNING log level
	WARNING
	// INFO is the INFO log level
	INFO
	// DEBUG is the DEBUG log level
	DEBUG
)

// Factory is the factory method for creating the logger used for the
// specified package.
type Factory func(pkgName string) ILogger

// ILogger is the interface implemented by loggers that can be used by the
// library. You can implement your own ILogger implementation by building a
// wrapper struct on top of your favourite logging library.
type ILogger interface {
	SetLevel(LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// SetLoggerFactory sets the factory function used to create ILogger
// instances. It can only be invoked once, before the first GetLogger use.
func SetLoggerFactory(f Factory) {
	loggers.mu.Lock()
	defer loggers.mu.Unlock()
	if loggers.factory != nil {
		panic("setting the logger factory again")
	}
	loggers.factory = f
}

// GetLogger returns the logger for the specified package name. The most
// common use case for the returned logger is to set its verbosity level.
func GetLogger(pkgName string) ILogger {
	loggers.mu.Lock()
	defer loggers.mu.Unlock()
	l, ok := loggers.loggers[pkgName]
	if !ok {
		l = &pkgLogger{pkgName: pkgName}
		loggers.loggers[pkgName] = l
	}
	return l
}

// pkgLogger is a thin wrapper that defers the creation of the backing
// ILogger until first use, so that SetLoggerFactory calls made during
// program initialization are honoured.
type pkgLogger struct {
	mu      sync.Mutex
	logger  ILogger
	pkgName string
}

func (p *pkgLogger) get() ILogger {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.logger == nil {
		p.logger = loggers.create(p.pkgName)
	}
	return p.logger
}

func (p *pkgLogger) SetLevel(l LogLevel) {
	p.get().SetLevel(l)
}

func (p *pkgLogger) Debugf(format string, args ...interface{}) {
	p.get().Debugf(format, args...)
}

func (p *pkgLogger) Infof(format string, args ...interface{}) {
	p.get().Infof(format, args...)
}

func (p *pkgLogger) Warningf(format string, args ...interface{}) {
	p.get().Warningf(format, args...)
}

func (p *pkgLogger) Errorf(format string, args ...interface{}) {
	p.get().Errorf(format, args...)
}

func (p *pkgLogger) Panicf(format string, args ...interface{}) {
	p.get().Panicf(format, args...)
}

type sysLoggers struct {
	mu      sync.Mutex
	loggers map[string]*pkgLogger
	factory Factory
}

func (s *sysLoggers) create(pkgName string) ILogger {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factory == nil {
		return &defaultLogger{pkgName: pkgName, level: INFO}
	}
	return s.factory(pkgName)
}

var loggers = &sysLoggers{loggers: make(map[string]*pkgLogger)}

// defaultLogger is the stdlib log based logger used when no custom
// factory has been set.
type defaultLogger struct {
	mu      sync.Mutex
	level   LogLevel
	pkgName string
}

func (d *defaultLogger) SetLevel(l LogLevel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = l
}

func (d *defaultLogger) enabled(l LogLevel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return l <= d.level
}

func (d *defaultLogger) logf(level string, format string, args ...interface{}) {
	log.Printf("%s: %s: %s", level, d.pkgName, fmt.Sprintf(format, args...))
}

func (d *defaultLogger) Debugf(format string, args ...interface{}) {
	if d.enabled(DEBUG) {
		d.logf("DEBUG", format, args...)
	}
}

func (d *defaultLogger) Infof(format string, args ...interface{}) {
	if d.enabled(INFO) {
		d.logf("INFO", format, args...)
	}
}

func (d *defaultLogger) Warningf(format string, args ...interface{}) {
	if d.enabled(WARNING) {
		d.logf("WARNING", format, args...)
	}
}

func (d *defaultLogger) Errorf(format string, args ...interface{}) {
	if d.enabled(ERROR) {
		d.logf("ERROR", format, args...)
	}
}

func (d *defaultLogger) Panicf(format string, args ...interface{}) {
	d.logf("PANIC", format, args...)
	panic(fmt.Sprintf(format, args...))
}
