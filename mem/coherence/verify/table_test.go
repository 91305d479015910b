package verify_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/protocols"
	"github.com/sarchlab/coherence/mem/coherence/verify"
)

var _ = Describe("Transitions", func() {
	var p coherence.Policy

	BeforeEach(func() {
		p = protocols.NewMSI(coherence.NewFullDirectory(4))
	})

	It("should list misses with their messages", func() {
		rows := verify.Transitions(p)

		Expect(rows).To(ContainElement(verify.Row{
			State:   "Invalid",
			Event:   "Miss Write",
			Next:    "Modified",
			Message: "AcquireExclusive -> GrantExclusive",
		}))
		Expect(rows).To(ContainElement(verify.Row{
			State: "Shared",
			Event: "Hit Read",
			Next:  "Shared",
		}))
	})

	It("should list releases of maintenance commands and probes", func() {
		rows := verify.Transitions(p)

		Expect(rows).To(ContainElement(verify.Row{
			State:   "Modified",
			Event:   "Flush",
			Next:    "Invalid",
			Message: "ReleaseInvalidateData",
		}))
		Expect(rows).To(ContainElement(verify.Row{
			State: "Shared",
			Event: "Flush",
			Next:  "Invalid",
		}))
		Expect(rows).To(ContainElement(verify.Row{
			State:   "Modified",
			Event:   "ProbeDowngrade",
			Next:    "Shared",
			Message: "ReleaseDowngradeData",
		}))
	})

	It("should print aligned columns", func() {
		buf := new(bytes.Buffer)

		Expect(verify.WriteTransitions(buf, p)).To(Succeed())

		Expect(buf.String()).To(HavePrefix("STATE"))
		Expect(buf.String()).To(ContainSubstring("AcquireShared -> GrantShared"))
	})
})
