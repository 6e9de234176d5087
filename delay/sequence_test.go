package delay

import (
	"time"

	. "github.com/pingcap/check"
)

type sequenceSuite struct{}

var _ = Suite(&sequenceSuite{})

func (s *sequenceSuite) TestParse(c *C) {
	delays, err := Parse("16ms, 8ms,4ms,2ms")
	c.Assert(err, IsNil)
	c.Assert(delays, DeepEquals, []time.Duration{
		16 * time.Millisecond, 8 * time.Millisecond, 4 * time.Millisecond, 2 * time.Millisecond,
	})

	delays, err = Parse("1s,")
	c.Assert(err, IsNil)
	c.Assert(delays, DeepEquals, []time.Duration{time.Second})
}

func (s *sequenceSuite) TestParseInvalid(c *C) {
	for _, raw := range []string{"", " , ", "abc", "1s,-2s"} {
		_, err := Parse(raw)
		c.Assert(IsInvalidArgument(err), IsTrue, Commentf("raw %q", raw))
	}
}

func (s *sequenceSuite) TestHalving(c *C) {
	delays, err := Halving(16*time.Millisecond, 2*time.Millisecond)
	c.Assert(err, IsNil)
	c.Assert(delays, DeepEquals, []time.Duration{
		16 * time.Millisecond, 8 * time.Millisecond, 4 * time.Millisecond, 2 * time.Millisecond,
	})

	delays, err = Halving(time.Millisecond, 2*time.Millisecond)
	c.Assert(err, IsNil)
	c.Assert(delays, DeepEquals, []time.Duration{2 * time.Millisecond})

	_, err = Halving(time.Second, 0)
	c.Assert(IsInvalidArgument(err), IsTrue)
}
