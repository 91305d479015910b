package coherence

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("ManagerMetadata", func() {
	var (
		mockCtrl      *gomock.Controller
		clientPolicy  *MockClientPolicy
		managerPolicy *MockManagerPolicy
		config        *Config
		meta          ManagerMetadata
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clientPolicy = NewMockClientPolicy(mockCtrl)
		managerPolicy = NewMockManagerPolicy(mockCtrl)
		managerPolicy.EXPECT().Directory().
			Return(NewFullDirectory(4)).AnyTimes()
		config = MakeConfigBuilder().
			WithName("inner").
			WithPolicy(&mockedPolicy{clientPolicy, managerPolicy, nil}).
			Build()
		meta = NewManagerMetadata(config, 0b0101)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reset to the sharers the policy gives", func() {
		managerPolicy.EXPECT().SharersOnReset().Return(SharerSet(0)).Times(2)

		first := ManagerMetadataOnReset(config)
		second := ManagerMetadataOnReset(config)

		Expect(first.Sharers()).To(Equal(SharerSet(0)))
		Expect(first.Equals(second)).To(BeTrue())
		Expect(first.IsValid()).To(BeFalse())
	})

	It("should tell if all clients are sharers", func() {
		Expect(meta.Full()).To(BeFalse())
		Expect(NewManagerMetadata(config, 0b1111).Full()).To(BeTrue())
	})

	It("should list the probe targets", func() {
		Expect(meta.ProbeTargets()).To(Equal([]ClientID{0, 2}))
	})

	It("should ask the policy if probes are required for an acquire", func() {
		acq := Acquire{Type: 1, AddrBlock: 0x40}
		managerPolicy.EXPECT().RequiresProbes(acq, SharerSet(0b0101)).
			Return(true)

		Expect(meta.RequiresProbes(acq)).To(BeTrue())
	})

	It("should check flush for voluntary writebacks", func() {
		managerPolicy.EXPECT().RequiresProbesOnCmd(CmdFlush, SharerSet(0b0101)).
			Return(true)

		Expect(meta.RequiresProbesOnVoluntaryWriteback()).To(BeTrue())
	})

	It("should make a probe for a command", func() {
		managerPolicy.EXPECT().ProbeType(CmdFlush, SharerSet(0b0101)).
			Return(ProbeType(0)).Times(2)

		probe := meta.MakeProbe(CmdFlush, 0x40)
		recall := meta.MakeProbeForVoluntaryWriteback(0x40)

		Expect(probe.Link).To(Equal("inner"))
		Expect(probe.Is(ProbeType(0))).To(BeTrue())
		Expect(probe.AddrBlock).To(Equal(uint64(0x40)))
		Expect(recall).To(Equal(probe))
	})

	It("should make a probe for an acquire", func() {
		acq := Acquire{Type: 1, AddrBlock: 0x80}
		managerPolicy.EXPECT().ProbeTypeOnAcquire(acq, SharerSet(0b0101)).
			Return(ProbeType(2))

		probe := meta.MakeProbeForAcquire(acq)

		Expect(probe.Is(ProbeType(2))).To(BeTrue())
		Expect(probe.AddrBlock).To(Equal(uint64(0x80)))
	})

	It("should acknowledge a voluntary release", func() {
		rel := Release{Voluntary: true, ClientID: 2, ClientXactID: 7}

		grant := meta.MakeGrantForRelease(rel, 9)

		Expect(grant.IsVoluntaryAck()).To(BeTrue())
		Expect(grant.Dst).To(Equal(ClientID(2)))
		Expect(grant.ClientXactID).To(Equal(uint64(7)))
		Expect(grant.ManagerXactID).To(Equal(uint64(9)))
	})

	It("should use the policy grant type for custom acquires", func() {
		acq := Acquire{Type: 1, ClientID: 1, ClientXactID: 3}
		managerPolicy.EXPECT().GrantType(acq, SharerSet(0b0101)).
			Return(GrantType(1))

		grant := meta.MakeGrant(acq, 4, 2, 0xbeef)

		Expect(grant.Is(GrantType(1))).To(BeTrue())
		Expect(grant.Dst).To(Equal(ClientID(1)))
		Expect(grant.ClientXactID).To(Equal(uint64(3)))
		Expect(grant.ManagerXactID).To(Equal(uint64(4)))
		Expect(grant.AddrBeat).To(Equal(2))
		Expect(grant.Data).To(Equal(uint64(0xbeef)))
	})

	It("should bypass the policy for built-in acquires", func() {
		acq := MakeBuiltInAcquire(AcquireGetBlock, 3, 0x40, CmdRead, 0)

		grant := meta.MakeGrant(acq, 4, 0, 0)

		Expect(grant.IsBuiltIn(GrantGetDataBlock)).To(BeTrue())
	})

	It("should transition on release", func() {
		rel := Release{Type: 0}
		managerPolicy.EXPECT().
			SharersOnRelease(rel, ClientID(2), SharerSet(0b0101)).
			Return(SharerSet(0b0001))

		next := meta.OnRelease(rel, 2)

		Expect(next.Sharers()).To(Equal(SharerSet(0b0001)))
		Expect(meta.Sharers()).To(Equal(SharerSet(0b0101)))
	})

	It("should transition on grant", func() {
		grant := Grant{Type: 0}
		managerPolicy.EXPECT().
			SharersOnGrant(grant, ClientID(1), SharerSet(0b0101)).
			Return(SharerSet(0b0111))

		Expect(meta.OnGrant(grant, 1).Sharers()).To(Equal(SharerSet(0b0111)))
	})

	It("should compare by sharers", func() {
		Expect(meta.Equals(NewManagerMetadata(config, 0b0101))).To(BeTrue())
		Expect(meta.Equals(NewManagerMetadata(config, 0b0001))).To(BeFalse())
	})
})
