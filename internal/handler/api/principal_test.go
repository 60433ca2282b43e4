//go:build unit

package api_test

import (
	"flight-booking/internal/domain/user"
	"flight-booking/internal/pkg/jwt"
	"flight-booking/internal/usecase"
	usecasemock "flight-booking/tests/mock/usecase"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

var (
	customerPrincipal = usecase.Principal{UserID: uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"), Email: "customer@example.com", Role: user.RoleCustomer}
	adminPrincipal    = usecase.Principal{UserID: uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"), Email: "admin@example.com", Role: user.RoleAdmin}
)

// newTokenValidator accepts customerToken and adminToken and rejects the rest.
func newTokenValidator(ctrl *gomock.Controller) *usecasemock.MockTokenValidator {
	v := usecasemock.NewMockTokenValidator(ctrl)
	v.EXPECT().ValidateToken(gomock.Any()).DoAndReturn(func(token string) (usecase.Principal, error) {
		switch token {
		case customerToken:
			return customerPrincipal, nil
		case adminToken:
			return adminPrincipal, nil
		default:
			return usecase.Principal{}, jwt.ErrInvalidToken
		}
	}).AnyTimes()
	return v
}
