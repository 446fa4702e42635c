package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/auth"
	userDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/user"
	"github.com/frahmantamala/absence-request/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Auth Handler", func() {
	var handler *auth.Handler

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		hasher := auth.NewBcryptHasher(bcrypt.MinCost)
		hash, err := hasher.Hash("Staff1234")
		Expect(err).NotTo(HaveOccurred())

		store := &MockCredentialStore{users: map[string]*userDatamodel.User{
			"staff@example.com": {ID: 1, Email: "staff@example.com", Name: "教員", PasswordHash: hash, RoleID: 1},
		}}
		handler = auth.NewHandler(&transport.BaseHandler{Logger: slogger}, auth.NewService(store, hasher, slogger))
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	It("returns the user record without the password hash", func() {
		w := login(`{"email":"staff@example.com","password":"Staff1234"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		var resp auth.LoginResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.User.Email).To(Equal("staff@example.com"))
		Expect(resp.User.RoleID).To(Equal(1))
		Expect(resp.User.StudentNumber).To(BeNil())
	})

	It("returns 401 for a wrong password", func() {
		w := login(`{"email":"staff@example.com","password":"Staff9999"}`)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Message).To(Equal(internal.MsgInvalidCredentials))
	})

	It("returns 400 when fields are missing", func() {
		w := login(`{}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var resp internal.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Errors).To(HaveLen(2))
	})
})
