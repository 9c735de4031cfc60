// This file is part of Dragon32Rev3Proto.
//
// Dragon32Rev3Proto is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dragon32Rev3Proto is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dragon32Rev3Proto.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"strings"
	"testing"

	"github.com/jimbro1000/Dragon32Rev3Proto/logger"
	"github.com/jimbro1000/Dragon32Rev3Proto/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}
	test.ExpectFailure(t, logger.Write(s))

	logger.Log("test", "this is a test")
	test.ExpectSuccess(t, logger.Write(s))
	test.ExpectEquality(t, s.String(), "test: this is a test\n")
}

func TestRepeatCompression(t *testing.T) {
	logger.Clear()

	// identical entries are compressed into a single entry with a repeat
	// count rather than being logged twice
	logger.Log("test", "repeated detail")
	logger.Log("test", "repeated detail")

	s := &strings.Builder{}
	test.ExpectSuccess(t, logger.Write(s))
	test.ExpectEquality(t, s.String(), "test: repeated detail (repeat x2)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "a")
	logger.Log("test", "b")
	logger.Log("test", "c")

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.ExpectEquality(t, s.String(), "test: b\ntest: c\n")
}
