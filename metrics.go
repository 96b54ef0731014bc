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

package intervals

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// WriteMetrics writes all collected metrics in Prometheus format to the
// specified writer. This function is typically called by the metrics http
// handler of the host application.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}

type treeMetrics struct {
	built      *metrics.Counter
	queried    *metrics.Counter
	ambiguous  *metrics.Counter
	droppedNaN *metrics.Counter
	useMetrics bool
}

func newTreeMetrics(useMetrics bool) *treeMetrics {
	tm := &treeMetrics{useMetrics: useMetrics}
	if useMetrics {
		name := "intervals_tree_built_total"
		tm.built = metrics.GetOrCreateCounter(name)
		name = "intervals_point_queried_total"
		tm.queried = metrics.GetOrCreateCounter(name)
		name = "intervals_ambiguous_indexer_total"
		tm.ambiguous = metrics.GetOrCreateCounter(name)
		name = "intervals_nan_interval_dropped_total"
		tm.droppedNaN = metrics.GetOrCreateCounter(name)
	}
	return tm
}

func (tm *treeMetrics) treeBuilt() {
	if tm.useMetrics {
		tm.built.Add(1)
	}
}

func (tm *treeMetrics) pointQueried() {
	if tm.useMetrics {
		tm.queried.Add(1)
	}
}

func (tm *treeMetrics) ambiguousIndexer() {
	if tm.useMetrics {
		tm.ambiguous.Add(1)
	}
}

func (tm *treeMetrics) nanDropped(count int) {
	if tm.useMetrics {
		tm.droppedNaN.Add(count)
	}
}
