package delay

import (
	"sync"
	"testing"
	"time"

	. "github.com/pingcap/check"
)

func TestDelay(t *testing.T) {
	TestingT(t)
}

type selectorSuite struct{}

var _ = Suite(&selectorSuite{})

func (s *selectorSuite) TestSelectWalksThenPins(c *C) {
	delays := []time.Duration{16, 8, 4, 2}
	expected := []time.Duration{16, 8, 4, 2, 2, 2, 2}
	for i, want := range expected {
		got, err := Select(delays, int64(i))
		c.Assert(err, IsNil)
		c.Assert(got, Equals, want, Commentf("invocation %d", i))
	}

	got, err := Select(delays, 1<<40)
	c.Assert(err, IsNil)
	c.Assert(got, Equals, time.Duration(2))
}

func (s *selectorSuite) TestSelectSingleElement(c *C) {
	delays := []time.Duration{5}
	for i := int64(0); i < 5; i++ {
		got, err := Select(delays, i)
		c.Assert(err, IsNil)
		c.Assert(got, Equals, time.Duration(5))
	}
}

func (s *selectorSuite) TestSelectZeroDelay(c *C) {
	got, err := Select([]time.Duration{0, 3}, 0)
	c.Assert(err, IsNil)
	c.Assert(got, Equals, time.Duration(0))
}

func (s *selectorSuite) TestInvalidArgument(c *C) {
	_, err := Select(nil, 0)
	c.Assert(IsInvalidArgument(err), IsTrue)
	c.Assert(err, ErrorMatches, "empty delay sequence.*")

	_, err = Select([]time.Duration{}, 0)
	c.Assert(IsInvalidArgument(err), IsTrue)

	_, err = Select([]time.Duration{-1, 2}, 0)
	c.Assert(IsInvalidArgument(err), IsTrue)
	c.Assert(err, ErrorMatches, "negative delay -1ns at index 0.*")

	_, err = Select([]time.Duration{1, 2}, -1)
	c.Assert(IsInvalidArgument(err), IsTrue)

	c.Assert(IsInvalidArgument(nil), IsFalse)
	c.Assert(Validate([]time.Duration{0, 1}), IsNil)
}

func (s *selectorSuite) TestSelectDoesNotMutate(c *C) {
	delays := []time.Duration{16, 8, 4, 2}
	snapshot := append([]time.Duration(nil), delays...)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := int64(0); i < 100; i++ {
				At(delays, i)
			}
		}()
	}
	wg.Wait()

	c.Assert(delays, DeepEquals, snapshot)
}
