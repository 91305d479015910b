package protocols

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/coherence/mem/coherence"
)

var _ = Describe("MSI", func() {
	var (
		p   *MSI
		dir coherence.Directory
	)

	BeforeEach(func() {
		dir = coherence.NewFullDirectory(4)
		p = NewMSI(dir)
	})

	DescribeTable("hits",
		func(cmd coherence.MemCmd, s coherence.ClientState, hit bool) {
			Expect(p.IsHit(cmd, s)).To(Equal(hit))
		},
		Entry("read on invalid", coherence.CmdRead, MSIInvalid, false),
		Entry("read on shared", coherence.CmdRead, MSIShared, true),
		Entry("write on shared", coherence.CmdWrite, MSIShared, false),
		Entry("write on modified", coherence.CmdWrite, MSIModified, true),
		Entry("load reserved on shared", coherence.CmdLoadReserved, MSIShared, false),
		Entry("prefetch write on modified",
			coherence.CmdPrefetchWrite, MSIModified, true),
	)

	DescribeTable("grants",
		func(g coherence.Grant, expected coherence.ClientState) {
			Expect(p.ClientStateOnGrant(g, coherence.CmdRead, MSIInvalid)).
				To(Equal(expected))
		},
		Entry("shared", coherence.Grant{Type: GrantShared}, MSIShared),
		Entry("exclusive", coherence.Grant{Type: GrantExclusive}, MSIModified),
		Entry("exclusive ack",
			coherence.Grant{Type: GrantExclusiveAck}, MSIModified),
		Entry("built-in",
			coherence.Grant{BuiltIn: true, Type: coherence.GrantGetDataBlock},
			MSIInvalid),
	)

	DescribeTable("probes",
		func(
			t coherence.ProbeType,
			s coherence.ClientState,
			next coherence.ClientState,
			rel coherence.ReleaseType,
		) {
			probe := coherence.Probe{Type: t}

			Expect(p.ClientStateOnProbe(probe, s)).To(Equal(next))
			Expect(p.ReleaseTypeOnProbe(probe, s)).To(Equal(rel))
		},
		Entry("invalidate modified",
			ProbeInvalidate, MSIModified, MSIInvalid, ReleaseInvalidateData),
		Entry("invalidate shared",
			ProbeInvalidate, MSIShared, MSIInvalid, ReleaseInvalidateAck),
		Entry("downgrade modified",
			ProbeDowngrade, MSIModified, MSIShared, ReleaseDowngradeData),
		Entry("downgrade invalid",
			ProbeDowngrade, MSIInvalid, MSIInvalid, ReleaseDowngradeAck),
		Entry("copy modified",
			ProbeCopy, MSIModified, MSIModified, ReleaseCopyData),
	)

	It("should ask for exclusivity on write intent", func() {
		Expect(p.AcquireType(coherence.CmdRead, MSIInvalid)).
			To(Equal(AcquireShared))
		Expect(p.AcquireType(coherence.CmdWrite, MSIShared)).
			To(Equal(AcquireExclusive))
		Expect(p.AcquireType(coherence.CmdPrefetchWrite, MSIInvalid)).
			To(Equal(AcquireExclusive))
	})

	It("should need a new acquire when a write follows a read miss", func() {
		Expect(p.RequiresAcquireOnSecondaryMiss(
			coherence.CmdRead, coherence.CmdWrite, MSIInvalid)).To(BeTrue())
		Expect(p.RequiresAcquireOnSecondaryMiss(
			coherence.CmdWrite, coherence.CmdRead, MSIInvalid)).To(BeFalse())
		Expect(p.RequiresAcquireOnSecondaryMiss(
			coherence.CmdRead, coherence.CmdRead, MSIInvalid)).To(BeFalse())
	})

	It("should only write back modified lines", func() {
		Expect(p.RequiresReleaseOnCacheControl(coherence.CmdFlush, MSIShared)).
			To(BeFalse())
		Expect(p.RequiresReleaseOnCacheControl(coherence.CmdFlush, MSIModified)).
			To(BeTrue())
		Expect(p.ClientStateOnCacheControl(coherence.CmdFlush, MSIModified)).
			To(Equal(MSIInvalid))
		Expect(p.ClientStateOnCacheControl(coherence.CmdProduce, MSIModified)).
			To(Equal(MSIShared))
		Expect(p.ClientStateOnCacheControl(coherence.CmdClean, MSIModified)).
			To(Equal(MSIModified))
	})

	Context("manager", func() {
		shared := coherence.Acquire{Type: AcquireShared}
		exclusive := coherence.Acquire{Type: AcquireExclusive}

		It("should not probe when nobody shares the line", func() {
			Expect(p.RequiresProbes(exclusive, dir.Flush())).To(BeFalse())
			Expect(p.RequiresProbesOnCmd(coherence.CmdFlush, dir.Flush())).
				To(BeFalse())
		})

		It("should probe a single sharer that may be a writer", func() {
			Expect(p.RequiresProbes(shared, 0b0100)).To(BeTrue())
			Expect(p.ProbeTypeOnAcquire(shared, 0b0100)).
				To(Equal(ProbeDowngrade))
		})

		It("should let readers join several readers", func() {
			Expect(p.RequiresProbes(shared, 0b0110)).To(BeFalse())
			Expect(p.GrantType(shared, 0b0110)).To(Equal(GrantShared))
		})

		It("should invalidate readers for a writer", func() {
			Expect(p.RequiresProbes(exclusive, 0b0110)).To(BeTrue())
			Expect(p.ProbeTypeOnAcquire(exclusive, 0b0110)).
				To(Equal(ProbeInvalidate))
			Expect(p.GrantType(exclusive, 0)).To(Equal(GrantExclusive))
		})

		It("should probe built-in puts but not built-in gets", func() {
			get := coherence.MakeBuiltInAcquire(
				coherence.AcquireGetBlock, 0, 0x40, coherence.CmdRead, 0)
			put := coherence.MakeBuiltInAcquire(
				coherence.AcquirePutBlock, 0, 0x40, coherence.CmdWrite, 1)

			Expect(p.RequiresProbes(get, 0b0110)).To(BeFalse())
			Expect(p.RequiresProbes(put, 0b0110)).To(BeTrue())
			Expect(p.ProbeTypeOnAcquire(get, 0b0100)).To(Equal(ProbeCopy))
			Expect(p.ProbeTypeOnAcquire(put, 0b0100)).To(Equal(ProbeInvalidate))
		})

		It("should always probe with an imprecise directory", func() {
			null := NewMSI(coherence.NewNullDirectory(4))

			Expect(null.RequiresProbes(shared, null.SharersOnReset())).
				To(BeTrue())
		})

		It("should track sharers through grants and releases", func() {
			s := p.SharersOnReset()
			s = p.SharersOnGrant(coherence.Grant{Type: GrantShared}, 1, s)
			s = p.SharersOnGrant(coherence.Grant{Type: GrantShared}, 2, s)
			Expect(s).To(Equal(coherence.SharerSet(0b0110)))

			s = p.SharersOnGrant(
				coherence.Grant{BuiltIn: true, Type: coherence.GrantGetDataBeat},
				3, s)
			Expect(s).To(Equal(coherence.SharerSet(0b0110)))

			s = p.SharersOnRelease(
				coherence.Release{Type: ReleaseDowngradeAck}, 1, s)
			Expect(s).To(Equal(coherence.SharerSet(0b0110)))

			s = p.SharersOnRelease(
				coherence.Release{Type: ReleaseInvalidateAck}, 1, s)
			Expect(s).To(Equal(coherence.SharerSet(0b0100)))
		})
	})
})
