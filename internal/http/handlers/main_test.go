package handlers

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := RegisterValidations(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
