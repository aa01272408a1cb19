/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/streamseries/streamseries/internal/harnesserr"
	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/stream"
	"github.com/streamseries/streamseries/vtime"
)

var _ = Describe("AssertReadable", func() {
	It("succeeds when the recorded series matches the expected series", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("--a--b--c--|", nil, nil, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.RunAll()).To(Succeed())
		recorder.Wait()

		Expect(stream.AssertReadable(recorder, "--a--b--c--|", nil, nil)).To(Succeed())
	})

	It("fails with a tick-aligned diff when a character mismatches", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("--a--b--c--|", nil, nil, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.RunAll()).To(Succeed())
		recorder.Wait()

		err = stream.AssertReadable(recorder, "--a--b--x--|", nil, nil)
		Expect(err).To(HaveOccurred())

		assertionErr, ok := err.(*harnesserr.AssertionError)
		Expect(ok).To(BeTrue())
		Expect(assertionErr.Expected).To(Equal("--a--b--x--|"))
		Expect(assertionErr.Actual).To(Equal("--a--b--c--|"))
		Expect(assertionErr.Diff).To(ContainSubstring("^"))
		Expect(assertionErr.Snapshot).NotTo(BeNil())
		Expect(assertionErr.Snapshot.Frames).To(Equal(recorder.Frames()))
	})
})
