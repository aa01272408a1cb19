/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vtime_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/streamseries/streamseries/internal/harnesserr"
	"github.com/streamseries/streamseries/vtime"
)

var _ = Describe("Scheduler", func() {
	var sched *vtime.Scheduler

	BeforeEach(func() {
		sched = vtime.New(vtime.Options{})
	})

	It("fires actions in tick order", func() {
		var order []int
		Expect(sched.At(2, func() { order = append(order, 2) })).To(Succeed())
		Expect(sched.At(0, func() { order = append(order, 0) })).To(Succeed())
		Expect(sched.At(1, func() { order = append(order, 1) })).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())
		Expect(order).To(Equal([]int{0, 1, 2}))
	})

	It("fires same-tick actions in insertion order", func() {
		var order []string
		Expect(sched.At(0, func() { order = append(order, "first") })).To(Succeed())
		Expect(sched.At(0, func() { order = append(order, "second") })).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())
		Expect(order).To(Equal([]string{"first", "second"}))
	})

	It("allows rescheduling from within an action at the current tick", func() {
		var order []int
		Expect(sched.At(0, func() {
			order = append(order, 0)
			Expect(sched.At(0, func() { order = append(order, 1) })).To(Succeed())
		})).To(Succeed())

		Expect(sched.RunAll()).To(Succeed())
		Expect(order).To(Equal([]int{0, 1}))
	})

	It("rejects scheduling into the past", func() {
		Expect(sched.At(5, func() {})).To(Succeed())
		Expect(sched.RunAll()).To(Succeed())
		Expect(sched.Now()).To(Equal(5))

		err := sched.At(0, func() {})
		Expect(err).To(HaveOccurred())
		var usage *harnesserr.UsageError
		Expect(err).To(BeAssignableToTypeOf(usage))
	})

	It("rejects reentrant RunAll", func() {
		Expect(sched.At(0, func() {
			err := sched.RunAll()
			Expect(err).To(HaveOccurred())
		})).To(Succeed())
		Expect(sched.RunAll()).To(Succeed())
	})

	It("reports a timeout once the tick bound is exceeded", func() {
		sched = vtime.New(vtime.Options{MaxTicks: 3})
		Expect(sched.At(10, func() {})).To(Succeed())

		err := sched.RunAll()
		Expect(err).To(HaveOccurred())
		var timeout *harnesserr.TimeoutError
		Expect(err).To(BeAssignableToTypeOf(timeout))
	})

	It("reports no pending work once drained", func() {
		Expect(sched.Pending()).To(Equal(0))
		Expect(sched.At(0, func() {})).To(Succeed())
		Expect(sched.Pending()).To(Equal(1))
		Expect(sched.RunAll()).To(Succeed())
		Expect(sched.Pending()).To(Equal(0))
	})
})
