package petcareserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	adoptionmapper "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/http/mapper"
	bookingmapper "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/http/mapper"
	catalogmapper "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/http/mapper"
	offeringmapper "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/http/mapper"
	ordermapper "github.com/Apurer/petcare-api/internal/domains/orders/adapters/http/mapper"
	paymentmapper "github.com/Apurer/petcare-api/internal/domains/payments/adapters/http/mapper"
	petmapper "github.com/Apurer/petcare-api/internal/domains/pets/adapters/http/mapper"
	usermapper "github.com/Apurer/petcare-api/internal/domains/users/adapters/http/mapper"
	"github.com/Apurer/petcare-api/internal/shared/auth"
	apierrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

// responder maps every bounded context's errors to RFC 7807 problems.
var responder = apierrors.NewChainedResponder("",
	AuthErrorMapper,
	usermapper.ErrorMapper,
	catalogmapper.ErrorMapper,
	petmapper.ErrorMapper,
	offeringmapper.ErrorMapper,
	ordermapper.ErrorMapper,
	adoptionmapper.ErrorMapper,
	bookingmapper.ErrorMapper,
	paymentmapper.ErrorMapper,
)

// AuthErrorMapper turns authorization failures into 401 and 403 problems.
func AuthErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return apierrors.FromError(apierrors.ErrUnauthorized, err), true
	case errors.Is(err, auth.ErrForbidden):
		return apierrors.FromError(apierrors.ErrForbidden, err), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		responder.BadRequest(c, err.Error())
		return false
	}
	return true
}

type message struct {
	Message string `json:"message"`
}
