package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signupReq struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type itemReq struct {
	Name string  `json:"name" binding:"required"`
	Qty  int64   `json:"qty" binding:"required,min=1"`
	Cost float64 `json:"price" binding:"money"`
}

func TestToDetails_Struct(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&signupReq{Email: "nope", Password: "short", ConfirmPassword: "other"})

	d := ToDetails(err)
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be 8 to 72 characters", d["password"])
	assert.Equal(t, "must match password", d["confirmPassword"])
}

func TestToDetails_Slice(t *testing.T) {
	Init()
	items := []itemReq{{Name: "ok", Qty: 1}, {Qty: 0, Cost: -1}}
	err := Slice(items)

	d := ToDetails(err)
	assert.Equal(t, "is required", d["[1].name"])
	assert.Equal(t, "is required", d["[1].qty"])
	assert.Equal(t, "must not be negative", d["[1].price"])
	assert.NotContains(t, d, "[0].name")
}

func TestToDetails_MoneyUpperBound(t *testing.T) {
	Init()
	err := Slice([]itemReq{{Name: "a", Qty: 1, Cost: 999999.99}, {Name: "b", Qty: 1, Cost: 1.8446744073709552e17}})

	d := ToDetails(err)
	assert.Equal(t, map[string]string{"[1].price": "must be at most 999999.99"}, d)
}

func TestSlice_AllValid(t *testing.T) {
	Init()
	assert.NoError(t, Slice([]itemReq{{Name: "a", Qty: 2, Cost: 1.5}}))
	assert.NoError(t, Slice([]itemReq{}))
}

func TestToDetails_JSONErrors(t *testing.T) {
	var v itemReq
	err := json.Unmarshal([]byte(`{"qty":"two"}`), &v)
	assert.Equal(t, map[string]string{"qty": "must be int64"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Fallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
}
