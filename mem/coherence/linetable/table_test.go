package linetable

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/protocols"
	"github.com/sarchlab/coherence/sim/hooking"
)

var _ = Describe("Table", func() {
	var (
		config      *coherence.Config
		table       *ClientTable
		hookLock    sync.Mutex
		transitions []Transition
	)

	BeforeEach(func() {
		config = coherence.MakeConfigBuilder().
			WithName("l1").
			WithPolicy(protocols.NewMSI(coherence.NewFullDirectory(2))).
			Build()
		table = NewClientTable("L1[0]", config, nil)
		transitions = nil

		table.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			Expect(ctx.Domain).To(BeIdenticalTo(table))

			hookLock.Lock()
			defer hookLock.Unlock()

			transitions = append(transitions, ctx.Item.(Transition))
		}))
	})

	It("should reset lines on first touch", func() {
		m := table.Get(0x40)

		Expect(m.IsValid()).To(BeFalse())
		Expect(table.Addresses()).To(BeEmpty())
	})

	It("should commit a transition and report it", func() {
		txn, err := table.Begin(0x40)
		Expect(err).ToNot(HaveOccurred())

		grant := coherence.Grant{Type: protocols.GrantShared}
		txn.Commit("Grant", txn.Before().OnGrant(grant, coherence.CmdRead),
			"GrantShared")

		Expect(table.Get(0x40).State()).To(Equal(protocols.MSIShared))
		Expect(table.IsBusy(0x40)).To(BeFalse())
		Expect(transitions).To(HaveLen(1))
		Expect(transitions[0]).To(Equal(Transition{
			Table:     "L1[0]",
			AddrBlock: 0x40,
			Event:     "Grant",
			TxnID:     txn.ID(),
			Before:    "Invalid",
			After:     "Shared",
			Changed:   true,
			Msg:       "GrantShared",
		}))
	})

	It("should allow one transition per line at a time", func() {
		txn, err := table.Begin(0x40)
		Expect(err).ToNot(HaveOccurred())

		_, err = table.Begin(0x40)
		Expect(errors.Is(err, ErrLineBusy)).To(BeTrue())

		_, err = table.Begin(0x80)
		Expect(err).ToNot(HaveOccurred())

		txn.Abort("Grant")

		Expect(transitions).To(HaveLen(1))
		Expect(transitions[0].Changed).To(BeFalse())

		_, err = table.Begin(0x40)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should not finish a transition twice", func() {
		txn, _ := table.Begin(0x40)
		txn.Abort("Hit")

		Expect(func() { txn.Commit("Hit", txn.Before(), "") }).To(Panic())
	})

	It("should update lines in one call", func() {
		after, err := table.Update(0x40, "Hit",
			func(before coherence.ClientMetadata) (coherence.ClientMetadata, string) {
				return before.OnHit(coherence.CmdWrite), ""
			})

		Expect(err).ToNot(HaveOccurred())
		Expect(after.State()).To(Equal(protocols.MSIModified))
		Expect(table.Snapshot()).To(Equal(map[string]string{"0x40": "Modified"}))
	})

	It("should serialize concurrent updates of a line", func() {
		var wg sync.WaitGroup

		busy := 0
		lock := sync.Mutex{}

		for i := 0; i < 16; i++ {
			wg.Add(1)

			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				txn, err := table.Begin(0x40)
				if err != nil {
					lock.Lock()
					busy++
					lock.Unlock()

					return
				}

				txn.Abort("Hit")
			}()
		}

		wg.Wait()

		lock.Lock()
		defer lock.Unlock()
		hookLock.Lock()
		defer hookLock.Unlock()

		Expect(len(transitions) + busy).To(Equal(16))
	})
})
