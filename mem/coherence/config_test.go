package coherence

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var policy Policy

	BeforeEach(func() {
		policy = &mockedPolicy{}
	})

	It("should build with defaults", func() {
		c := MakeConfigBuilder().WithName("l2").WithPolicy(policy).Build()

		Expect(c.Name).To(Equal("l2"))
		Expect(c.ClientXactIDBits).To(Equal(6))
		Expect(c.MaxClientXactID()).To(Equal(uint64(63)))
		Expect(c.DataBeats).To(Equal(4))
	})

	It("should panic on invalid configurations", func() {
		Expect(func() { MakeConfigBuilder().WithPolicy(policy).Build() }).
			To(Panic())
		Expect(func() { MakeConfigBuilder().WithName("x").Build() }).
			To(Panic())
		Expect(func() {
			MakeConfigBuilder().WithName("x").WithPolicy(policy).
				WithClientXactIDBits(0).Build()
		}).To(Panic())
		Expect(func() {
			MakeConfigBuilder().WithName("x").WithPolicy(policy).
				WithManagerXactIDBits(33).Build()
		}).To(Panic())
		Expect(func() {
			MakeConfigBuilder().WithName("x").WithPolicy(policy).
				WithDataBeats(0).Build()
		}).To(Panic())
	})

	It("should wrap transaction IDs within the namespace", func() {
		c := MakeConfigBuilder().
			WithName("l1").
			WithPolicy(policy).
			WithClientXactIDBits(2).
			WithManagerXactIDBits(1).
			Build()

		clientIDs := c.NewClientXactIDAllocator()
		managerIDs := c.NewManagerXactIDAllocator()

		got := []uint64{}
		for i := 0; i < 5; i++ {
			got = append(got, clientIDs.Next())
		}

		Expect(got).To(Equal([]uint64{0, 1, 2, 3, 0}))
		Expect(managerIDs.Next()).To(Equal(uint64(0)))
		Expect(managerIDs.Next()).To(Equal(uint64(1)))
		Expect(managerIDs.Next()).To(Equal(uint64(0)))
	})
})
