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

var _ = Describe("Readable", func() {
	It("emits and closes per its program, observed by a Recorder", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("a--b--|", nil, nil, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.RunAll()).To(Succeed())
		recorder.Wait()

		Expect(recorder.Frames()).To(Equal(series.FrameList{
			{Tick: 0, Kind: series.Emit, Value: "a"},
			{Tick: 3, Kind: series.Emit, Value: "b"},
			{Tick: 6, Kind: series.Close},
		}))
	})

	It("errors on Abort, recording the abort reason as the terminal frame", func() {
		sched := vtime.New(vtime.Options{})
		abortErr := "boom"
		program, _, err := series.Parse("012#", nil, abortErr, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.RunAll()).To(Succeed())
		recorder.Wait()

		Expect(recorder.Frames()).To(Equal(series.FrameList{
			{Tick: 0, Kind: series.Emit, Value: "0"},
			{Tick: 1, Kind: series.Emit, Value: "1"},
			{Tick: 2, Kind: series.Emit, Value: "2"},
			{Tick: 3, Kind: series.Abort, Value: abortErr},
		}))
	})

	It("lets a Recorder finish once Stop is called on a series with no terminal frame", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("a--b", nil, nil, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.RunAll()).To(Succeed())
		readable.Stop()
		recorder.Wait()

		Expect(recorder.Frames()).To(Equal(series.FrameList{
			{Tick: 0, Kind: series.Emit, Value: "a"},
			{Tick: 3, Kind: series.Emit, Value: "b"},
		}))
	})

	It("drops later frames once the consumer cancels early", func() {
		sched := vtime.New(vtime.Options{})
		program, _, err := series.Parse("a--b--c--|", nil, nil, series.Readable)
		Expect(err).NotTo(HaveOccurred())

		readable := stream.NewReadable(sched, program, nil)
		recorder := stream.NewRecorder(sched, readable)

		Expect(sched.At(4, func() { readable.Cancel("stop") })).To(Succeed())
		Expect(sched.RunAll()).To(Succeed())
		recorder.Wait()

		Expect(recorder.Frames()).To(Equal(series.FrameList{
			{Tick: 0, Kind: series.Emit, Value: "a"},
			{Tick: 3, Kind: series.Emit, Value: "b"},
			{Tick: 4, Kind: series.Cancel, Value: "stop"},
		}))
	})
})
