package playback

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Input", func() {
	var (
		c  *Controller
		in *Input
	)

	BeforeEach(func() {
		c = New(record(40, 2, 2))
		in = &Input{}
	})

	tick := func(n int) {
		for i := 0; i < n; i++ {
			in.Tick(c)
		}
	}

	It("does nothing without keys", func() {
		Expect(in.Tick(c).Changed()).To(BeFalse())
		Expect(c.Turn()).To(Equal(0))
	})

	It("steps once per press while a step key is held", func() {
		in.Press(KeyStepForward)
		tick(5)
		Expect(c.Turn()).To(Equal(1))
		Expect(in.Held(KeyStepForward)).To(BeTrue())
	})

	It("treats repeated presses of a held key as auto-repeat", func() {
		in.Press(KeyStepForward)
		tick(1)
		in.Press(KeyStepForward)
		tick(1)
		Expect(c.Turn()).To(Equal(1))
	})

	It("steps again after release and press", func() {
		in.Press(KeyStepForward)
		tick(1)
		in.Release(KeyStepForward)
		in.Press(KeyStepForward)
		tick(1)
		Expect(c.Turn()).To(Equal(2))
	})

	It("counts a tap shorter than a tick", func() {
		in.Press(KeyStepForward)
		in.Release(KeyStepForward)
		res := in.Tick(c)
		Expect(res.Navigated).To(BeTrue())
		Expect(c.Turn()).To(Equal(1))
	})

	It("pages on every tick while held", func() {
		in.Press(KeyPageForward)
		tick(3)
		Expect(c.Turn()).To(Equal(30))
		tick(1)
		Expect(c.Turn()).To(Equal(39))
		in.Release(KeyPageForward)
		in.Press(KeyPageBack)
		tick(1)
		Expect(c.Turn()).To(Equal(29))
	})

	It("jumps to either end", func() {
		in.Press(KeyJumpEnd)
		tick(1)
		Expect(c.Turn()).To(Equal(39))
		in.Release(KeyJumpEnd)
		in.Press(KeyJumpStart)
		tick(1)
		Expect(c.Turn()).To(Equal(0))
	})

	It("applies at most one navigation per tick", func() {
		c.Navigate(20)
		in.Press(KeyStepBack)
		in.Press(KeyPageForward)
		tick(1)
		Expect(c.Turn()).To(Equal(19))
		tick(1)
		Expect(c.Turn()).To(Equal(29))
	})

	It("toggles production once per press", func() {
		in.Press(KeyToggleProduction)
		res := in.Tick(c)
		Expect(res.ToggledMode).To(BeTrue())
		Expect(c.Mode()).To(Equal(Production))
		tick(4)
		Expect(c.Mode()).To(Equal(Production))
	})

	It("releases everything at once", func() {
		in.Press(KeyPageForward)
		in.Press(KeyJumpEnd)
		in.ReleaseAll()
		Expect(in.Held(KeyPageForward)).To(BeFalse())
		Expect(in.Held(KeyJumpEnd)).To(BeFalse())
	})

	It("follows polled key levels", func() {
		for i := 0; i < 5; i++ {
			in.Sync(KeyStepForward, true)
			in.Tick(c)
		}
		Expect(c.Turn()).To(Equal(1))

		in.Sync(KeyStepForward, false)
		in.Tick(c)
		in.Sync(KeyStepForward, true)
		in.Tick(c)
		Expect(c.Turn()).To(Equal(2))
	})

	It("ignores keys it does not know", func() {
		in.Press(Key(99))
		Expect(in.Held(Key(99))).To(BeFalse())
		Expect(in.Tick(c).Changed()).To(BeFalse())
	})
})
