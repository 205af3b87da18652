package service_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
)

var _ = Describe("Export", func() {
	Context("ExportInput", func() {
		It("writes every parameter key", func() {
			for _, format := range []service.ExportFormat{service.ExportFormatYAML, service.ExportFormatJSON} {
				data, err := service.ExportInput(model.DefaultProjectInput(), format)
				Expect(err).ToNot(HaveOccurred())
				for _, key := range calculators.ParamKeys {
					Expect(string(data)).To(ContainSubstring(key), "format %s misses %s", format, key)
				}
			}
		})

		It("rejects an unknown format", func() {
			_, err := service.ExportInput(model.DefaultProjectInput(), "toml")
			var formatErr *service.ErrUnsupportedFormat
			Expect(errors.As(err, &formatErr)).To(BeTrue())
		})
	})

	DescribeTable("round trips an input",
		func(format service.ExportFormat, in model.ProjectInput) {
			data, err := service.ExportInput(in, format)
			Expect(err).ToNot(HaveOccurred())

			parsed, err := service.ParseInput(data)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(in))
		},
		Entry("defaults as yaml", service.ExportFormatYAML, model.DefaultProjectInput()),
		Entry("defaults as json", service.ExportFormatJSON, model.DefaultProjectInput()),
		Entry("fractional values", service.ExportFormatYAML, model.ProjectInput{
			AreaPerFloor: 612.35, FloorCount: 4, WorkerCount: 12, HoursPerDay: 9.5, DaysPerWeek: 5,
			DaysPerFloorStructural: 7, FinishesManHoursPerM2: 22.25, PreConstructionDays: 10,
			FoundationDays: 0, CommissioningDays: 3, OverlapFraction: 0.35,
		}),
		Entry("all zero", service.ExportFormatJSON, model.ProjectInput{}),
	)

	Context("ParseInput", func() {
		It("fills missing keys with defaults", func() {
			parsed, err := service.ParseInput([]byte("workers: 30\n"))
			Expect(err).ToNot(HaveOccurred())

			expected := model.DefaultProjectInput()
			expected.WorkerCount = 30
			Expect(parsed).To(Equal(expected))
		})

		It("returns the defaults for an empty document", func() {
			parsed, err := service.ParseInput(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(model.DefaultProjectInput()))
		})

		DescribeTable("rejects invalid documents",
			func(doc, contains string) {
				_, err := service.ParseInput([]byte(doc))
				Expect(err).To(HaveOccurred())

				var invalidErr *service.ErrInvalidInput
				Expect(errors.As(err, &invalidErr)).To(BeTrue())
				Expect(strings.ToLower(err.Error())).To(ContainSubstring(contains))
			},
			Entry("unknown key", "aFloor: 100\ncranes: 2\n", "cranes"),
			Entry("negative value", `{"workers": -4}`, "workers"),
			Entry("overlap of one", "overlapFraction: 1\n", "overlapfraction"),
			Entry("too many hours", "hDay: 25\n", "hday"),
			Entry("not a number", "nFloors: many\n", "parse"),
		)
	})

	It("parses the supported format names", func() {
		for name, expected := range map[string]service.ExportFormat{
			"": service.ExportFormatYAML, "yml": service.ExportFormatYAML, "JSON": service.ExportFormatJSON,
		} {
			format, err := service.ParseExportFormat(name)
			Expect(err).ToNot(HaveOccurred())
			Expect(format).To(Equal(expected))
		}
		_, err := service.ParseExportFormat("xml")
		Expect(err).To(HaveOccurred())
	})
})
