package common

// RequestIDHeaderName carries the per-request correlation id on HTTP
// requests and responses.
const RequestIDHeaderName = "X-Request-ID"

// ServiceName is reported by the health service and used in log records.
const ServiceName = "smartbrain"
