package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apierrors "github.com/masakimorita/work-report-api/internal/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// respondWorkbook streams a workbook as an attachment download. The
// filename is offered both percent-encoded (RFC 5987) and as an ASCII
// fallback for clients that ignore filename*.
func respondWorkbook(c *gin.Context, f *excelize.File, filename string) {
	encoded := url.PathEscape(filename)
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, encoded, encoded))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
	_ = f.Close()
}

// openUpload validates and opens the uploaded spreadsheet from a
// multipart form.
func openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "ファイルがアップロードされていません")
		return nil, false
	}
	if fileHeader.Filename == "" {
		apierrors.BadRequest(c, "ファイルが選択されていません")
		return nil, false
	}
	if !strings.HasSuffix(fileHeader.Filename, ".xlsx") {
		apierrors.BadRequest(c, "Excelファイル(.xlsx)をアップロードしてください")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return nil, false
	}
	return file, true
}
