package postgres_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	absenceDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/absence"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm/schema"
)

const migrationsDir = "../../../db/migrations"

// upColumns returns column name -> declared type from the Up section of the
// migration that creates table.
func upColumns(table string) map[string]string {
	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	Expect(err).NotTo(HaveOccurred())

	for _, m := range migrations {
		raw, err := os.ReadFile(m.Source)
		Expect(err).NotTo(HaveOccurred())
		body := string(raw)
		if !strings.Contains(body, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			continue
		}

		up, _, _ := strings.Cut(body, "-- +goose Down")
		columns := make(map[string]string)
		for _, line := range strings.Split(up, "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			columns[fields[0]] = strings.TrimSuffix(strings.ToUpper(fields[1]), ",")
		}
		return columns
	}
	Fail("no migration creates " + table + " in " + filepath.Clean(migrationsDir))
	return nil
}

var _ = Describe("registration_details migration", func() {
	var columns map[string]string

	BeforeEach(func() {
		columns = upColumns("registration_details")
	})

	It("declares every column the data model maps", func() {
		s, err := schema.Parse(&absenceDatamodel.Request{}, &sync.Map{}, schema.NamingStrategy{})
		Expect(err).NotTo(HaveOccurred())

		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			Expect(columns).To(HaveKey(f.DBName), "column %s", f.DBName)
		}
	})

	It("leaves free-text columns without a width limit", func() {
		for _, name := range []string{
			"activity", "company_name", "comment",
			"time_class_information_subject_name", "time_class_information_instructor",
			"two_time_class_information_subject_name", "two_time_class_information_instructor",
			"three_time_class_information_subject_name", "three_time_class_information_instructor",
			"four_time_class_information_subject_name", "four_time_class_information_instructor",
		} {
			Expect(columns).To(HaveKeyWithValue(name, "TEXT"), "column %s", name)
		}
	})

	It("stores the absence date as a calendar day", func() {
		Expect(columns).To(HaveKeyWithValue("absence_date", "DATE"))
	})
})
