package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// InvalidParamFormatError reports a query parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

func bindListOrdersParams(r *http.Request) (ListOrdersParams, error) {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page); err != nil {
		return params, &InvalidParamFormatError{ParamName: "page", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", r.URL.Query(), &params.Size); err != nil {
		return params, &InvalidParamFormatError{ParamName: "size", Err: err}
	}
	return params, nil
}

func bindSearchArticlesParams(r *http.Request) (SearchArticlesParams, error) {
	var params SearchArticlesParams
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		return params, &InvalidParamFormatError{ParamName: "q", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page); err != nil {
		return params, &InvalidParamFormatError{ParamName: "page", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", r.URL.Query(), &params.Size); err != nil {
		return params, &InvalidParamFormatError{ParamName: "size", Err: err}
	}
	return params, nil
}
