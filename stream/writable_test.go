/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/stream"
	"github.com/streamseries/streamseries/vtime"
)

var _ = Describe("Writable", func() {
	It("records writes immediately when no backpressure is in effect", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("-----", nil, nil, series.Writable)
		Expect(err).NotTo(HaveOccurred())

		w := stream.NewWritable(sched, program, nil)
		Expect(sched.At(1, func() {
			Eventually(w.Write("a")).Should(Receive(BeNil()))
		})).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())
		w.Close()

		Expect(w.Recorded()).To(Equal(series.FrameList{
			{Tick: 1, Kind: series.Emit, Value: "a"},
			{Tick: 1, Kind: series.Close},
		}))
	})

	It("holds writes issued under backpressure and releases them as a group", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("--<--->--", nil, nil, series.Writable)
		Expect(err).NotTo(HaveOccurred())

		w := stream.NewWritable(sched, program, nil)

		var cDone, dDone <-chan error
		Expect(sched.At(3, func() {
			cDone = w.Write("c")
			dDone = w.Write("d")
		})).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())

		Expect(cDone).To(Receive(BeNil()))
		Expect(dDone).To(Receive(BeNil()))

		Expect(w.Recorded()).To(Equal(series.FrameList{
			{Tick: 6, Kind: series.Emit, Value: "c"},
			{Tick: 6, Kind: series.Emit, Value: "d"},
		}))
	})

	It("rejects pending and future writes once aborted", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("--<--#", nil, "boom", series.Writable)
		Expect(err).NotTo(HaveOccurred())

		w := stream.NewWritable(sched, program, nil)

		var pendingDone <-chan error
		Expect(sched.At(2, func() {
			pendingDone = w.Write("x")
		})).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())

		var gotErr error
		Eventually(pendingDone).Should(Receive(&gotErr))
		Expect(gotErr).To(HaveOccurred())

		lateErr := <-w.Write("y")
		Expect(lateErr).To(Equal(gotErr))

		Expect(w.Recorded()).To(Equal(series.FrameList{
			{Tick: 5, Kind: series.Abort, Value: "boom"},
		}))
	})
})
