package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sizeLimit = 240 * 1024 // CloudWatch log size limit
	// request log type
	requestType = "request"

	redactedPlaceholder = "[REDACTED]"
)

// tokenField matches credential-bearing JSON fields in request bodies so
// they never reach the logs (spec: bearer tokens must not be logged).
var tokenField = regexp.MustCompile(`"(token|pat|api_key)"\s*:\s*"[^"]*"`)

// logRecord for Request Log
type logRecord struct {
	RequestID       string // AwsRequestID when running behind API Gateway, used as TraceID
	SessionID       string // opaque session cookie value, if any
	Timestamp       int64
	Duration        int64
	HTTPStatusCode  int
	ErrorStackTrace string
	HTTPMethod      string
	RequestPath     string
	RequestQuery    string
	RequestBody     string
	ResponseBody    string
	Type            string `json:"type"` // keyword for logstash to identify the log as request log
}

func (record *logRecord) String() string {
	buf := bytes.NewBufferString("")
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	e := encoder.Encode(record)
	if e != nil {
		GetLogger().Error("failed to encode log record", zap.Error(e))
		return "{}"
	}
	return buf.String()
}

// GinLogMiddleware supports request logging as a gin middleware
func GinLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var record *logRecord
		// overwrite the gin.Context.Writer to log response body
		respLogWriter := &respLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = respLogWriter

		defer func() {
			logStr := logTruncate(record)
			// finally print request log even on panic
			fmt.Println(logStr)
		}()

		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				record.HTTPStatusCode = http.StatusInternalServerError
				record.ErrorStackTrace = stack
				// throw the panic to the later middlewares
				panic(r)
			}
		}()

		record = initLogRecord(c)

		if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok {
			record.RequestID = lc.AwsRequestID
		}

		c.Next()

		// if response normally, fill in remain fields
		record.HTTPStatusCode = c.Writer.Status()
		record.Duration = time.Now().UnixNano()/1e6 - record.Timestamp
		if respLogWriter.body != nil {
			record.ResponseBody = respLogWriter.body.String()
		}
	}
}

func logTruncate(record *logRecord) (logStr string) {
	logStr = record.String()
	if len(logStr) < sizeLimit {
		return logStr
	}
	respSize := len(record.ResponseBody)
	reqSize := len(record.RequestBody)
	// truncate request body or response body if the total size is over the limit
	if len(logStr) > sizeLimit {
		record.ResponseBody = "TRUNCATED..."
	}

	if len(logStr)-respSize > sizeLimit {
		record.RequestBody = "TRUNCATED..."
	}

	if len(logStr)-respSize-reqSize > sizeLimit {
		record.ErrorStackTrace = "TRUNCATED..."
	}
	return record.String()
}

type respLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w respLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w respLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func initLogRecord(ctx *gin.Context) *logRecord {
	httpMethod := ctx.Request.Method
	requestPath := ctx.Request.URL.Path
	requestQuery := ctx.Request.URL.Query()
	requestBodyBytes, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		GetLogger().Warn("failed to read request body for logging", zap.Error(err))
	}
	// reattach request body for later use
	ctx.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))

	sessionID, _ := ctx.Cookie("session_id")

	record := &logRecord{
		Timestamp:    time.Now().UnixNano() / 1e6,
		HTTPMethod:   httpMethod,
		RequestPath:  requestPath,
		RequestQuery: requestQuery.Encode(),
		RequestBody:  redactBody(requestBodyBytes),
		SessionID:    sessionID,
		Type:         requestType,
	}

	return record
}

// redactBody blanks credential fields before the body is logged
func redactBody(body []byte) string {
	return tokenField.ReplaceAllString(string(body), `"$1":"`+redactedPlaceholder+`"`)
}
