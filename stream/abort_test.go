/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/stream"
	"github.com/streamseries/streamseries/vtime"
)

var _ = Describe("Signal", func() {
	It("fires exactly once, at the tick of its single frame, with the configured reason", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("---!", nil, "R", series.AbortSignal)
		Expect(err).NotTo(HaveOccurred())

		signal := stream.NewSignal(sched, program)

		Expect(sched.At(2, func() {
			Expect(signal.Aborted()).To(BeFalse())
			Expect(signal.Err()).NotTo(HaveOccurred())
		})).To(Succeed())

		var sawAbortedAtFour bool
		Expect(sched.At(4, func() {
			sawAbortedAtFour = signal.Aborted()
		})).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())

		Expect(sawAbortedAtFour).To(BeTrue())
		Expect(signal.Aborted()).To(BeTrue())
		Expect(signal.Reason()).To(Equal("R"))
		Expect(signal.Err()).To(Equal(context.Canceled))

		select {
		case <-signal.Done():
		default:
			Fail("Done channel should be closed once aborted")
		}
	})

	It("never fires when the series carries no '!'", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("----", nil, nil, series.AbortSignal)
		Expect(err).NotTo(HaveOccurred())

		signal := stream.NewSignal(sched, program)

		Expect(sched.RunAll()).To(Succeed())
		Expect(signal.Aborted()).To(BeFalse())
		Expect(signal.Err()).NotTo(HaveOccurred())
	})
})
