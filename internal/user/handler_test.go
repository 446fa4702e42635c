package user_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/transport"
	"github.com/frahmantamala/absence-request/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler", func() {
	var (
		repo    *MockRepository
		handler *user.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = NewMockRepository()
		service := user.NewService(repo, prefixHasher{}, slogger)
		handler = user.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	register := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	It("returns 201 for a valid staff registration", func() {
		w := register(`{"email":"staff@example.com","password":"Staff1234","name":"教員","role_id":1}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp transport.MessageResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal("success"))
		Expect(resp.Message).To(Equal("登録成功"))
		Expect(repo.users).To(HaveKey("staff@example.com"))
	})

	It("returns 400 with field errors for an empty body", func() {
		w := register(``)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal("error"))
		Expect(resp.Message).To(Equal(internal.MsgInvalidInput))
		Expect(resp.Errors).To(HaveLen(4))
	})

	It("returns 400 for malformed JSON", func() {
		w := register(`{"email":`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Errors).To(ConsistOf(internal.ValidationError{Field: "body", Message: "リクエストボディの形式が不正です"}))
	})

	fieldsIn := func(w *httptest.ResponseRecorder) []string {
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		seen := map[string]bool{}
		var fields []string
		for _, fe := range resp.Errors {
			if !seen[fe.Field] {
				seen[fe.Field] = true
				fields = append(fields, fe.Field)
			}
		}
		return fields
	}

	It("reports every broken field when one value has the wrong JSON type", func() {
		w := register(`{"email":"bad","password":"x","name":"","role_id":2,"student_number":"zz","department":"CS","grade":"abc","class":9}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(fieldsIn(w)).To(Equal([]string{
			"email", "password", "name", "student_number", "department", "grade", "class",
		}))
	})

	It("reports a mistyped field on its own line", func() {
		w := register(`{"email":"staff@example.com","password":"Staff1234","name":["教員"],"role_id":1}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Errors).To(ConsistOf(internal.ValidationError{Field: "name", Message: "nameの形式が不正です"}))
	})

	It("accepts integers sent as numeric strings", func() {
		w := register(`{"email":"taro@example.com","password":"Abcd1234","name":"山田太郎","role_id":"2","student_number":"A012B3456","department":"IS","grade":"3","class":"1"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(repo.users).To(HaveKey("taro@example.com"))
		stored := repo.users["taro@example.com"]
		Expect(stored.RoleID).To(Equal(2))
		Expect(*stored.Grade).To(Equal(3))
		Expect(*stored.Class).To(Equal(1))
	})

	It("returns 500 when the store rejects the account", func() {
		Expect(register(`{"email":"a@example.com","password":"Abcd1234","name":"A","role_id":1}`).Code).
			To(Equal(http.StatusCreated))
		repo.shouldFail = true
		repo.failError = errors.New("duplicate key value violates unique constraint")

		w := register(`{"email":"a@example.com","password":"Abcd1234","name":"A","role_id":1}`)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
