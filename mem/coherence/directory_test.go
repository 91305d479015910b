package coherence

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Directory", func() {
	Context("full representation", func() {
		var dir Directory

		BeforeEach(func() {
			dir = NewFullDirectory(4)
		})

		It("should push and pop sharers", func() {
			s := dir.Flush()
			s = dir.Push(s, 1)
			s = dir.Push(s, 3)

			Expect(dir.Count(s)).To(Equal(2))
			Expect(dir.Contains(s, 1)).To(BeTrue())
			Expect(dir.Contains(s, 0)).To(BeFalse())
			Expect(dir.Next(s)).To(Equal(ClientID(1)))

			s = dir.Pop(s, 1)
			Expect(dir.One(s)).To(BeTrue())
			Expect(dir.Next(s)).To(Equal(ClientID(3)))

			s = dir.Pop(s, 3)
			Expect(dir.None(s)).To(BeTrue())
			Expect(s).To(Equal(dir.Flush()))
		})

		It("should report full sets", func() {
			Expect(dir.IsFull(0b1111)).To(BeTrue())
			Expect(dir.IsFull(0b0111)).To(BeFalse())
			Expect(Members(dir, 0b1010)).To(Equal([]ClientID{1, 3}))
		})

		It("should use one bit per client", func() {
			Expect(dir.Width()).To(Equal(4))
		})

		It("should panic on out of range clients", func() {
			Expect(func() { dir.Push(0, 4) }).To(Panic())
			Expect(func() { dir.Pop(0, -1) }).To(Panic())
		})

		It("should support the maximum number of clients", func() {
			d := NewFullDirectory(MaxClients)
			Expect(d.IsFull(SharerSet(^uint64(0)))).To(BeTrue())
			Expect(func() { NewFullDirectory(MaxClients + 1) }).To(Panic())
		})
	})

	Context("null representation", func() {
		var dir Directory

		BeforeEach(func() {
			dir = NewNullDirectory(3)
		})

		It("should never track anything", func() {
			s := dir.Push(dir.Flush(), 2)

			Expect(s).To(Equal(dir.Flush()))
			Expect(dir.None(s)).To(BeFalse())
			Expect(dir.One(s)).To(BeFalse())
			Expect(dir.Count(s)).To(Equal(3))
			Expect(dir.Contains(s, 1)).To(BeTrue())
		})

		It("should broadcast to every client", func() {
			Expect(dir.IsFull(0)).To(BeTrue())
			Expect(Members(dir, 0)).To(Equal([]ClientID{0, 1, 2}))
		})

		It("should describe itself", func() {
			Expect(dir.Name()).To(Equal("null"))
			Expect(dir.Width()).To(Equal(1))
			Expect(dir.NumClients()).To(Equal(3))
			Expect(dir.Precise()).To(BeFalse())
			Expect(dir.Pop(dir.Full(0), 1)).To(Equal(dir.Flush()))
			Expect(dir.Next(0)).To(Equal(ClientID(0)))
		})
	})

	It("should describe a full directory", func() {
		dir := NewFullDirectory(5)

		Expect(dir.Name()).To(Equal("full"))
		Expect(dir.Width()).To(Equal(5))
		Expect(dir.NumClients()).To(Equal(5))
		Expect(dir.Precise()).To(BeTrue())
		Expect(dir.Next(dir.Push(dir.Flush(), 3))).To(Equal(ClientID(3)))
	})
})
