// sstv-transmitter - transmit images over amateur radio as slow scan TV
//  Copyright (C) 2024, the sstv-transmitter authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package loglimiter

import (
	"fmt"
	"log"
	"time"
)

// New returns a LogLimiter which drops repeats of a message seen
// within the given interval. The transmit loop emits the same failure
// line on every cycle when the TNC is unplugged; this keeps the log
// readable.
func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
		seen:     make(map[string]entry),
	}
}

type entry struct {
	last       time.Time
	suppressed int
}

// LogLimiter rate limits identical log lines. Distinct lines do not
// affect each other's limiting.
type LogLimiter struct {
	interval time.Duration
	nowFunc  func() time.Time
	seen     map[string]entry
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	now := limiter.nowFunc()
	e, ok := limiter.seen[s]
	if ok && now.Sub(e.last) < limiter.interval {
		e.suppressed++
		limiter.seen[s] = e
		return
	}

	if e.suppressed > 0 {
		log.Printf("%s (repeated %d times)", s, e.suppressed)
	} else {
		log.Print(s)
	}
	limiter.seen[s] = entry{last: now}
}
