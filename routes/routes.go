package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CoptEgypt/StMark-Aghapy/controllers"
)

// RegisterCheckoutRoutes binds every method on the checkout endpoint to the
// controller; method dispatch (OPTIONS, POST, 405) happens inside it.
func RegisterCheckoutRoutes(r *gin.Engine, cc *controllers.CheckoutController) {
	r.Any("/checkout", cc.Handle)
}
