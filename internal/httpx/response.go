package httpx

import (
	"encoding/json"
	"net/http"
)

// User-facing messages, in the storefront's language.
const (
	msgOrderSaved          = "บันทึกออเดอร์เรียบร้อยแล้ว"
	msgEmptyCart           = "กรุณาเลือกสินค้าอย่างน้อย 1 รายการ"
	msgInvalidProduct      = "พบสินค้าที่ไม่ถูกต้อง"
	msgOrderFailed         = "เกิดข้อผิดพลาดในการบันทึกออเดอร์"
	msgMissingDate         = "กรุณาระบุวันที่"
	msgInvalidDate         = "วันที่ไม่ถูกต้อง"
	msgFetchFailed         = "เกิดข้อผิดพลาดในการดึงข้อมูล"
	msgProductsFetchFailed = "เกิดข้อผิดพลาดในการดึงข้อมูลสินค้า"
	msgMissingNamePrice    = "กรุณาระบุชื่อและราคาสินค้า"
	msgCreateProductFailed = "เกิดข้อผิดพลาดในการสร้างสินค้า"
	msgProductNotFound     = "ไม่พบสินค้า"
)

type errResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, code int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errResponse{Success: false, Message: msg})
}
