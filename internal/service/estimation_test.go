package service_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
)

var _ = Describe("EstimationService", func() {
	var (
		svc *service.EstimationService
		ctx context.Context
	)

	BeforeEach(func() {
		svc = service.NewEstimationService()
		ctx = context.Background()
	})

	Context("with the default input", func() {
		It("computes the documented figures", func() {
			estimate, err := svc.Estimate(ctx, svc.Defaults())
			Expect(err).ToNot(HaveOccurred())
			Expect(estimate.Undefined).To(BeFalse())

			Expect(estimate.Derived.GrossFloorArea).To(Equal(4995.0))
			Expect(estimate.Derived.ManHoursPerDay).To(Equal(520.0))
			Expect(estimate.Derived.StructuralDays).To(Equal(90.0))
			Expect(estimate.Derived.FinishesManHoursTotal).To(Equal(149850.0))
			Expect(*estimate.Derived.FinishesDaysIfSequential).To(BeNumerically("~", 288.17, 0.005))
			Expect(*estimate.Derived.FinishesDaysRemaining).To(BeNumerically("~", 57.63, 0.005))
			Expect(*estimate.Derived.TotalDays).To(BeNumerically("~", 231.63, 0.005))

			Expect(estimate.Total).ToNot(BeNil())
			Expect(estimate.Total.Rounded().Days).To(Equal(232.0))
		})

		It("lists the phases in critical path order", func() {
			estimate, err := svc.Estimate(ctx, svc.Defaults())
			Expect(err).ToNot(HaveOccurred())

			phases := make([]model.Phase, 0, len(estimate.Breakdown.Phases))
			for _, p := range estimate.Breakdown.Phases {
				phases = append(phases, p.Phase)
				Expect(p.Reason).ToNot(BeEmpty())
			}
			Expect(phases).To(Equal(model.Phases))
			Expect(estimate.Breakdown.Days(model.PhasePreConstruction)).To(Equal(42.0))
			Expect(estimate.Breakdown.Days(model.PhaseFoundation)).To(Equal(28.0))
			Expect(estimate.Breakdown.Days(model.PhaseCommissioning)).To(Equal(14.0))
		})

		It("totals exactly the sum of the phases", func() {
			estimate, err := svc.Estimate(ctx, svc.Defaults())
			Expect(err).ToNot(HaveOccurred())

			sum := 0.0
			for _, p := range estimate.Breakdown.Phases {
				sum += p.Days
			}
			Expect(math.Abs(sum - *estimate.Derived.TotalDays)).To(BeNumerically("<", 1e-9))
			Expect(estimate.Breakdown.TotalDays).To(Equal(*estimate.Derived.TotalDays))
		})
	})

	It("shortens the project as the overlap grows", func() {
		previous := math.Inf(1)
		for _, overlap := range []float64{0, 0.2, 0.5, 0.8, 0.95} {
			in := model.DefaultProjectInput()
			in.OverlapFraction = overlap

			estimate, err := svc.Estimate(ctx, in)
			Expect(err).ToNot(HaveOccurred())
			Expect(*estimate.Derived.TotalDays).To(BeNumerically("<", previous))
			previous = *estimate.Derived.TotalDays
		}
	})

	It("keeps the whole finishing duration without overlap", func() {
		in := model.DefaultProjectInput()
		in.OverlapFraction = 0

		estimate, err := svc.Estimate(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(*estimate.Derived.FinishesDaysRemaining).To(Equal(*estimate.Derived.FinishesDaysIfSequential))
	})

	It("does not clamp its input", func() {
		in := model.DefaultProjectInput()
		in.HoursPerDay = 30

		estimate, err := svc.Estimate(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(estimate.Input.HoursPerDay).To(Equal(30.0))
		Expect(estimate.Derived.ManHoursPerDay).To(Equal(65.0 * 30))
	})

	DescribeTable("reports an undefined duration on zero capacity",
		func(workers, hours float64) {
			in := model.DefaultProjectInput()
			in.WorkerCount = workers
			in.HoursPerDay = hours

			estimate, err := svc.Estimate(ctx, in)
			Expect(err).To(HaveOccurred())

			var undefinedErr *service.ErrUndefinedDuration
			Expect(errors.As(err, &undefinedErr)).To(BeTrue())
			Expect(errors.Is(err, model.ErrUndefinedDuration)).To(BeTrue())

			Expect(estimate).ToNot(BeNil())
			Expect(estimate.Undefined).To(BeTrue())
			Expect(estimate.Message).ToNot(BeEmpty())
			Expect(estimate.Derived.FinishesDaysIfSequential).To(BeNil())
			Expect(estimate.Derived.FinishesDaysRemaining).To(BeNil())
			Expect(estimate.Derived.TotalDays).To(BeNil())
			Expect(estimate.Total).To(BeNil())
			Expect(estimate.Finishes).To(BeNil())

			// defined quantities are still reported, without NaN
			Expect(estimate.Derived.GrossFloorArea).To(Equal(4995.0))
			Expect(estimate.Structural.Days).To(Equal(90.0))
			Expect(math.IsNaN(estimate.Derived.ManHoursPerDay)).To(BeFalse())
		},
		Entry("no workers", 0.0, 8.0),
		Entry("no working hours", 65.0, 0.0),
		Entry("neither", 0.0, 0.0),
	)

	DescribeTable("reports an estimate out of range when a quantity overflows",
		func(mutate func(in *model.ProjectInput)) {
			in := model.DefaultProjectInput()
			mutate(&in)

			estimate, err := svc.Estimate(ctx, in)

			var outOfRangeErr *service.ErrOutOfRange
			Expect(errors.As(err, &outOfRangeErr)).To(BeTrue())
			Expect(errors.Is(err, model.ErrOutOfRange)).To(BeTrue())

			Expect(estimate).ToNot(BeNil())
			Expect(estimate.Undefined).To(BeTrue())
			Expect(estimate.Message).To(ContainSubstring("out of range"))
			Expect(estimate.Input).To(Equal(in))
			Expect(estimate.Total).To(BeNil())
			Expect(estimate.Derived.TotalDays).To(BeNil())
			for _, v := range []float64{
				estimate.Derived.GrossFloorArea,
				estimate.Derived.ManHoursPerDay,
				estimate.Derived.StructuralDays,
				estimate.Derived.FinishesManHoursTotal,
				estimate.Structural.Days,
				estimate.Structural.Weeks,
			} {
				Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeFalse())
			}
		},
		Entry("gross floor area", func(in *model.ProjectInput) { in.AreaPerFloor, in.FloorCount = 1e200, 1e200 }),
		Entry("gross floor area with no workers", func(in *model.ProjectInput) {
			in.AreaPerFloor, in.FloorCount, in.WorkerCount = 1e200, 1e200, 0
		}),
		Entry("finishing days", func(in *model.ProjectInput) { in.WorkerCount = 1e-310 }),
		Entry("total days", func(in *model.ProjectInput) { in.PreConstructionDays, in.FoundationDays = 1e308, 1e308 }),
	)

	It("returns identical estimates for identical inputs", func() {
		first, err := svc.Estimate(ctx, svc.Defaults())
		Expect(err).ToNot(HaveOccurred())
		second, err := svc.Estimate(ctx, svc.Defaults())
		Expect(err).ToNot(HaveOccurred())
		Expect(second).To(Equal(first))
	})
})
