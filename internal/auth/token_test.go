package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"expensehub/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

var _ = ginkgo.Describe("JWTCodec", func() {
	var (
		codec  *JWTCodec
		secret = "test-secret-key-that-is-long-enough"
	)

	ginkgo.BeforeEach(func() {
		codec = NewJWTCodec(secret, time.Hour)
	})

	ginkgo.Describe("Issue and Decode", func() {
		ginkgo.It("should round-trip the identity claims", func() {
			companyID := int64(7)
			claims := &Claims{
				UserID:    42,
				Email:     "user@example.com",
				Role:      RoleManager,
				CompanyID: &companyID,
				Company:   &CompanyClaim{ID: 7, Name: "Initech"},
			}

			token, err := codec.Issue(claims)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			decoded, err := codec.Decode(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(decoded.UserID).To(gomega.Equal(int64(42)))
			gomega.Expect(decoded.Email).To(gomega.Equal("user@example.com"))
			gomega.Expect(decoded.Role).To(gomega.Equal(RoleManager))
			gomega.Expect(*decoded.CompanyID).To(gomega.Equal(int64(7)))
			gomega.Expect(decoded.Company.Name).To(gomega.Equal("Initech"))
		})

		ginkgo.It("should set expiry one TTL after issuance", func() {
			token, err := codec.Issue(&Claims{UserID: 1, Email: "a@b.com", Role: RoleUser})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			decoded, err := codec.Decode(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			lifetime := decoded.ExpiresAt.Sub(decoded.IssuedAt.Time)
			gomega.Expect(lifetime).To(gomega.Equal(time.Hour))
		})
	})

	ginkgo.Describe("Decode failures", func() {
		ginkgo.It("should return ErrTokenExpired for an expired token", func() {
			expiredCodec := NewJWTCodec(secret, time.Hour)
			expiredCodec.ttl = -time.Minute

			token, err := expiredCodec.Issue(&Claims{UserID: 1, Email: "a@b.com", Role: RoleUser})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = codec.Decode(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("should return ErrTokenInvalid for a token signed with another key", func() {
			otherCodec := NewJWTCodec("a-completely-different-secret-key", time.Hour)
			token, err := otherCodec.Issue(&Claims{UserID: 1, Email: "a@b.com", Role: RoleUser})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = codec.Decode(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenInvalid))
		})

		ginkgo.It("should return ErrTokenInvalid for a tampered payload", func() {
			token, err := codec.Issue(&Claims{UserID: 1, Email: "a@b.com", Role: RoleUser})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// rewrite a claim but keep the original signature
			parts := strings.Split(token, ".")
			payload, err := base64.RawURLEncoding.DecodeString(parts[1])
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			mutated := strings.Replace(string(payload), `"user_id":1`, `"user_id":2`, 1)
			gomega.Expect(mutated).ToNot(gomega.Equal(string(payload)))
			parts[1] = base64.RawURLEncoding.EncodeToString([]byte(mutated))
			tampered := strings.Join(parts, ".")

			_, err = codec.Decode(tampered)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenInvalid))
		})

		ginkgo.It("should return ErrTokenMalformed for garbage input", func() {
			_, err := codec.Decode("not-a-token")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenMalformed))
		})
	})
})
