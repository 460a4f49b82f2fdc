package apimodels

const DefaultPageSize = 15

type Response struct {
	Status  string      `json:"status"`            // fail/success
	Message string      `json:"message,omitempty"` // flash message
	Data    interface{} `json:"data,omitempty"`    // payload
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` // total rows matching the filter
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewFieldError(field, message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Data:    map[string]string{field: message},
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewSuccess(message string, data interface{}) Response {
	return Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // rows per page
	Page  int `json:"page"`  // page number starting from 1
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = DefaultPageSize
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

const DateFormat = "2006-01-02"
const DateTimeFormat = "2006-01-02T15:04:05Z07:00"
