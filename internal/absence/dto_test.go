package absence_test

import (
	"strings"
	"time"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/absence"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CreateRequestDTO.Validate", func() {
	It("accepts a complete request", func() {
		sub, err := validCreateDTO().Validate(submittedAt, absence.DefaultWindowMonths)
		Expect(err).NotTo(HaveOccurred())
		Expect(sub.StudentID).To(Equal(int64(12)))
		Expect(sub.AbsenceDate).To(Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)))
		Expect(sub.Periods[0]).To(Equal(absence.PeriodSlot{Subject: "数学", Instructor: "田中"}))
		Expect(sub.Comment).To(BeNil())
	})

	It("reports every missing field at once", func() {
		_, err := absence.CreateRequestDTO{}.Validate(submittedAt, absence.DefaultWindowMonths)
		Expect(fieldNames(err)).To(Equal([]string{"student_id", "absence_date", "activity", "company_name", "periods"}))
	})

	It("rejects a non-numeric student id", func() {
		dto := validCreateDTO()
		dto.StudentID = "abc"
		_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
		Expect(fieldErrors(err)).To(ConsistOf(internal.ValidationError{
			Field: "student_id", Message: "student_idは数値で指定してください",
		}))
	})

	DescribeTable("absence date window",
		func(date string, ok bool) {
			dto := validCreateDTO()
			dto.AbsenceDate = date
			_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(fieldNames(err)).To(Equal([]string{"absence_date"}))
			}
		},
		Entry("earlier today", "2026-10-15", false),
		Entry("in the past", "2026-09-30", false),
		Entry("tomorrow", "2026-10-16", true),
		Entry("last day of the window", "2027-01-15", true),
		Entry("past the window", "2027-01-16", false),
		Entry("RFC 3339 inside the window", "2026-12-01T09:00:00+09:00", true),
		Entry("RFC 3339 exactly at the upper bound", "2027-01-15T10:00:00Z", true),
		Entry("RFC 3339 just past the upper bound", "2027-01-15T10:00:01Z", false),
	)

	It("explains a malformed date", func() {
		dto := validCreateDTO()
		dto.AbsenceDate = "2026/11/02"
		_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
		Expect(fieldErrors(err)).To(ConsistOf(internal.ValidationError{
			Field: "absence_date", Message: "公欠日付の形式が不正です",
		}))
	})

	It("uses the configured window length in the message", func() {
		dto := validCreateDTO()
		dto.AbsenceDate = "2026-12-01"
		_, err := dto.Validate(submittedAt, 1)
		Expect(fieldErrors(err)).To(ConsistOf(internal.ValidationError{
			Field: "absence_date", Message: "公欠日は現在日付から1カ月先までの範囲で指定してください",
		}))
	})

	Describe("periods", func() {
		It("needs subject and instructor in the same period", func() {
			dto := validCreateDTO()
			dto.Period1Instructor = ""
			dto.Period2Instructor = "佐藤"
			_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(fieldErrors(err)).To(ConsistOf(internal.ValidationError{
				Field: "periods", Message: "少なくとも1つの授業情報セットが必要です",
			}))
		})

		It("accepts any single complete period", func() {
			dto := validCreateDTO()
			dto.Period1Subject, dto.Period1Instructor = "", ""
			dto.Period4Subject, dto.Period4Instructor = "英語", "鈴木"
			sub, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Periods.AnyFilled()).To(BeTrue())
		})
	})

	Describe("comment", func() {
		It("is required for the other activity", func() {
			dto := validCreateDTO()
			dto.Activity = absence.OtherActivity
			_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(fieldErrors(err)).To(ConsistOf(internal.ValidationError{
				Field: "comment", Message: `activityが"その他"の場合、コメントは必須です`,
			}))
		})

		It("treats an empty comment as missing", func() {
			dto := validCreateDTO()
			dto.Activity = "other"
			dto.Comment = strPtr("")
			_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(fieldNames(err)).To(Equal([]string{"comment"}))
		})

		It("is limited to 100 characters", func() {
			dto := validCreateDTO()
			dto.Activity = absence.OtherActivity
			dto.Comment = strPtr(strings.Repeat("あ", absence.CommentMaxLength))
			_, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(err).NotTo(HaveOccurred())

			dto.Comment = strPtr(strings.Repeat("あ", absence.CommentMaxLength+1))
			_, err = dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(fieldNames(err)).To(Equal([]string{"comment"}))
		})

		It("is optional and unchecked for other activities", func() {
			dto := validCreateDTO()
			dto.Comment = strPtr(strings.Repeat("x", 300))
			sub, err := dto.Validate(submittedAt, absence.DefaultWindowMonths)
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Comment).NotTo(BeNil())
		})
	})
})

var _ = Describe("ParseStatusUpdate", func() {
	It("accepts approved and rejected", func() {
		for _, s := range []string{"approved", "rejected"} {
			update, err := absence.ParseStatusUpdate("12", "3", absence.UpdateStatusDTO{Status: s})
			Expect(err).NotTo(HaveOccurred())
			Expect(update.Key).To(Equal(absence.RequestKey{StudentID: 12, ID: 3}))
			Expect(string(update.Status)).To(Equal(s))
		}
	})

	DescribeTable("rejects other statuses",
		func(status string) {
			_, err := absence.ParseStatusUpdate("12", "3", absence.UpdateStatusDTO{Status: status})
			Expect(fieldNames(err)).To(Equal([]string{"status"}))
		},
		Entry("pending", "pending"),
		Entry("unknown", "maybe"),
		Entry("wrong case", "Approved"),
		Entry("missing", ""),
	)

	It("validates both path ids", func() {
		_, err := absence.ParseStatusUpdate("x", "", absence.UpdateStatusDTO{Status: "approved"})
		Expect(fieldErrors(err)).To(Equal([]internal.ValidationError{
			{Field: "student_id", Message: "student_idは数値で指定してください"},
			{Field: "id", Message: "idは必須です"},
		}))
	})
})

var _ = Describe("Status", func() {
	It("knows the lifecycle edges", func() {
		Expect(absence.CanTransition(absence.StatusPending, absence.StatusApproved)).To(BeTrue())
		Expect(absence.CanTransition(absence.StatusPending, absence.StatusRejected)).To(BeTrue())
		Expect(absence.CanTransition(absence.StatusPending, absence.StatusPending)).To(BeFalse())
		Expect(absence.CanTransition(absence.StatusApproved, absence.StatusRejected)).To(BeFalse())
		Expect(absence.CanTransition(absence.StatusRejected, absence.StatusApproved)).To(BeFalse())
	})
})
