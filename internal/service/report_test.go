package service_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/internal/service/report/xlsx"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("ReportService", func() {
	var (
		reports   *service.ReportService
		estimate  *model.Estimate
		undefined *model.Estimate
	)

	BeforeEach(func() {
		reports = service.NewReportService()
		estimator := service.NewEstimationService()

		var err error
		estimate, err = estimator.Estimate(context.Background(), model.DefaultProjectInput())
		Expect(err).ToNot(HaveOccurred())

		in := model.DefaultProjectInput()
		in.WorkerCount = 0
		undefined, err = estimator.Estimate(context.Background(), in)
		Expect(err).To(HaveOccurred())
	})

	It("parses the registered formats", func() {
		for _, name := range service.ReportFormats {
			format, err := reports.ParseReportFormat(name)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(format)).To(Equal(name))
		}
		_, err := reports.ParseReportFormat("pdf")
		Expect(err).To(HaveOccurred())
	})

	Context("html", func() {
		It("renders the form, sliders and phase bar", func() {
			page, err := reports.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatHTML, Query: "workers=65"})
			Expect(err).ToNot(HaveOccurred())

			Expect(page).To(ContainSubstring(`<form method="get" action="/"`))
			Expect(page).To(ContainSubstring(`type="range" id="daysPerFloorStruct-range" value="10" min="1" max="30"`))
			Expect(page).To(ContainSubstring(`type="range" id="overlapFraction-range" value="0.8" min="0" max="0.95"`))
			Expect(page).To(ContainSubstring(`type="number" id="daysPerFloorStruct" name="daysPerFloorStruct" value="10"`))
			Expect(page).To(ContainSubstring(`<form method="post" action="/api/v1/export"`))
			Expect(page).To(ContainSubstring(`<input type="hidden" name="workers" value="65">`))
			Expect(page).To(ContainSubstring(`href="/print?workers=65"`))
			Expect(page).To(ContainSubstring("4995.00 m²"))
			Expect(page).To(ContainSubstring("232"))
			Expect(strings.Count(page, `class="bar"`)).To(Equal(1))
		})

		It("keeps a structural cycle above the slider range", func() {
			in := model.DefaultProjectInput()
			in.DaysPerFloorStructural = 45
			long, err := service.NewEstimationService().Estimate(context.Background(), in)
			Expect(err).ToNot(HaveOccurred())

			page, err := reports.GenerateReport(long, service.ReportOptions{Format: service.ReportFormatHTML})
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(ContainSubstring(`id="daysPerFloorStruct-range" value="45" min="1" max="45"`))
			Expect(page).To(ContainSubstring(`name="daysPerFloorStruct" value="45"`))
			// the number input and the export form submit the value, the range does not
			Expect(strings.Count(page, `name="daysPerFloorStruct"`)).To(Equal(2))
		})

		It("drops the form in print mode", func() {
			page, err := reports.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatHTML, Print: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(page).ToNot(ContainSubstring("<form"))
			Expect(page).To(ContainSubstring("window.print()"))
		})

		It("explains an undefined duration", func() {
			page, err := reports.GenerateReport(undefined, service.ReportOptions{Format: service.ReportFormatHTML})
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(ContainSubstring("Duration undefined"))
			Expect(page).ToNot(ContainSubstring(`class="bar"`))
		})
	})

	Context("csv", func() {
		It("contains the inputs and the breakdown", func() {
			out, err := reports.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("aFloor,555"))
			Expect(out).To(ContainSubstring("PHASE BREAKDOWN"))
			Expect(out).To(ContainSubstring("Structure,90.00"))
			Expect(out).To(ContainSubstring("Total,231.63"))
		})

		It("reports the real share of a zero-length phase", func() {
			in := model.DefaultProjectInput()
			in.FoundationDays = 0
			zeroFoundation, err := service.NewEstimationService().Estimate(context.Background(), in)
			Expect(err).ToNot(HaveOccurred())

			out, err := reports.GenerateReport(zeroFoundation, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("Foundation,0.00,0.0,"))
		})

		It("writes the notice for an undefined duration", func() {
			out, err := reports.GenerateReport(undefined, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("NOTICE"))
			Expect(out).ToNot(ContainSubstring("PHASE BREAKDOWN"))
		})
	})

	Context("xlsx", func() {
		It("builds an Inputs and a Breakdown sheet", func() {
			out, err := reports.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatXLSX})
			Expect(err).ToNot(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader([]byte(out)))
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = f.Close() }()

			Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetInputs, xlsx.SheetBreakdown}))

			value, err := f.GetCellValue(xlsx.SheetInputs, "A2")
			Expect(err).ToNot(HaveOccurred())
			Expect(value).To(Equal("aFloor"))

			rows, err := f.GetRows(xlsx.SheetBreakdown)
			Expect(err).ToNot(HaveOccurred())
			var labels []string
			for _, row := range rows {
				if len(row) > 0 {
					labels = append(labels, row[0])
				}
			}
			Expect(labels).To(ContainElements("Pre-construction", "Structure", "Commissioning", "Total"))
		})

		It("writes the real share of a zero-length phase", func() {
			in := model.DefaultProjectInput()
			in.FoundationDays = 0
			zeroFoundation, err := service.NewEstimationService().Estimate(context.Background(), in)
			Expect(err).ToNot(HaveOccurred())

			out, err := reports.GenerateReport(zeroFoundation, service.ReportOptions{Format: service.ReportFormatXLSX})
			Expect(err).ToNot(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader([]byte(out)))
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = f.Close() }()

			rows, err := f.GetRows(xlsx.SheetBreakdown)
			Expect(err).ToNot(HaveOccurred())
			var share string
			for _, row := range rows {
				if len(row) > 2 && row[0] == "Foundation" {
					share = row[2]
				}
			}
			Expect(share).To(Equal("0"))
		})
	})

	Context("text", func() {
		It("draws a bar for every phase", func() {
			out, err := reports.GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatText})
			Expect(err).ToNot(HaveOccurred())
			for _, phase := range model.Phases {
				Expect(out).To(ContainSubstring(phase.Label()))
			}
			Expect(out).To(ContainSubstring("232 days"))
		})
	})

	It("rejects an unregistered format", func() {
		_, err := reports.GenerateReport(estimate, service.ReportOptions{Format: "pdf"})
		Expect(err).To(HaveOccurred())
	})
})
