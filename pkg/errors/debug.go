package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is a log-friendly flattening of an error chain.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`
	Retryable  bool   `json:"retryable"`

	Chain   []string `json:"chain,omitempty"`
	Details any      `json:"details,omitempty"`

	SQLState      string `json:"sql_state,omitempty"`
	SQLConstraint string `json:"sql_constraint,omitempty"`
	SQLTable      string `json:"sql_table,omitempty"`
	SQLDetail     string `json:"sql_detail,omitempty"`
	SQLMessage    string `json:"sql_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
		Code:       CodeOf(err),
	}
	d.Retryable = MetadataFor(d.Code).Retryable
	if typed := As(err); typed != nil {
		d.Details = typed.Details()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.SQLState = pgxErr.Code
		d.SQLConstraint = pgxErr.ConstraintName
		d.SQLTable = pgxErr.TableName
		d.SQLDetail = pgxErr.Detail
		d.SQLMessage = pgxErr.Message
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.SQLState = string(pqErr.Code)
		d.SQLConstraint = pqErr.Constraint
		d.SQLTable = pqErr.Table
		d.SQLDetail = pqErr.Detail
		d.SQLMessage = pqErr.Message
	}

	return d
}

// Fields returns the dump as structured log fields. SQL fields are included
// only when the chain carried a driver error.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
		"retryable":   d.Retryable,
	}
	if d.Details != nil {
		fields["error_details"] = d.Details
	}
	if d.SQLState != "" {
		fields["sql_state"] = d.SQLState
		fields["sql_constraint"] = d.SQLConstraint
		fields["sql_table"] = d.SQLTable
		fields["sql_detail"] = d.SQLDetail
		fields["sql_message"] = d.SQLMessage
	}
	return fields
}
