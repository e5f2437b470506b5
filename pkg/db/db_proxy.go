package db

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx"
)

// QueryDesc describes a `select [Props] from [Table] where [Filters]`
// read, shaped around the reference-data tables internal/shiplist
// reads at startup (hulls, launchers, engines, special friendly
// codes) rather than a general-purpose query builder: every caller in
// this tree loads a whole table into memory once, so Filters is
// usually empty and Props lists the exact columns the in-memory cache
// scans into.
//
// Props lists the selected columns in scan order; they are joined
// with ',' and never table-qualified, so a joined Table must already
// disambiguate duplicate column names itself.
//
// Table names the FROM clause, which may be a join expression as long
// as Props accounts for it.
//
// Filters are AND-ed together into the WHERE clause, in order.
type QueryDesc struct {
	Props   []string
	Table   string
	Filters []Filter
}

// valid reports whether q is obviously well-formed: it has at least
// one selected column and a table to read from.
func (q QueryDesc) valid() bool {
	return len(q.Props) > 0 && len(q.Table) > 0
}

// generate renders q into a SQL statement. Callers must check
// q.valid() first; an invalid QueryDesc produces garbage SQL here
// rather than an error.
func (q QueryDesc) generate() string {
	// Generate base query.
	str := fmt.Sprintf("select %s from %s", strings.Join(q.Props, ", "), q.Table)

	// Append filters if any.
	if len(q.Filters) > 0 {
		str += " where"

		for id, filter := range q.Filters {
			if id > 0 {
				str += " and"
			}
			str += fmt.Sprintf(" %s", filter)
		}
	}

	return str
}

// QueryResult wraps the rows produced by one FetchFromDB call. Err
// carries any error the underlying query hit so a caller can check it
// once instead of threading an error return through Next/Scan.
type QueryResult struct {
	rows *pgx.Rows
	Err  error
}

// Next advances to the next row, reporting whether one exists.
func (q QueryResult) Next() bool {
	return q.rows.Next()
}

// Scan reads the current row's columns into dest, in the same order
// as the QueryDesc.Props that produced this result.
func (q QueryResult) Scan(dest ...interface{}) error {
	return q.rows.Scan(dest...)
}

// Close releases the underlying rows, if any were returned. Every
// reference-data loader in internal/shiplist defers this right after
// a successful FetchFromDB.
func (q QueryResult) Close() {
	if q.rows != nil {
		q.rows.Close()
	}
}

// InsertReq describes one call to a stored DB function that persists
// data rather than reading it back, the write-side counterpart to
// QueryDesc. Script names the function; Args are marshalled to JSON
// and passed as its positional arguments, in order.
//
// SkipReturn selects between `SELECT * from script(args)` (the
// function returns rows) and `SELECT script(args)` (it doesn't); the
// run-archival insert in internal/routes sets it, since it only
// records a side effect.
type InsertReq struct {
	Script     string
	Args       []interface{}
	SkipReturn bool
}

// Convertible lets an argument to InsertToDB reshape itself before
// marshalling, e.g. to drop fields that only matter for an API
// response view and not for the stored row.
type Convertible interface {
	Convert() interface{}
}

// Proxy is a thin convenience wrapper around a *DB: it turns a
// QueryDesc/InsertReq into the SQL string and hides table layout from
// callers like internal/shiplist.Proxy and internal/routes.Server,
// which only ever see typed accessors and archival calls.
type Proxy struct {
	dbase *DB
}

// NewProxy wraps dbase in a Proxy. dbase may be nil; every method
// below checks for that and returns ErrInvalidDB rather than
// panicking, so a Proxy built without a live connection (e.g. a
// Server started without DB archival configured) degrades gracefully.
func NewProxy(dbase *DB) Proxy {
	return Proxy{
		dbase: dbase,
	}
}

// FetchFromDB runs the read described by query against the wrapped
// DB. The returned QueryResult.Err distinguishes a failure during
// query execution from the early-return errors below, which fire
// before any SQL ever reaches the connection.
func (p Proxy) FetchFromDB(query QueryDesc) (QueryResult, error) {
	if p.dbase == nil {
		return QueryResult{}, ErrInvalidDB
	}
	if !query.valid() {
		return QueryResult{}, ErrInvalidQuery
	}

	var res QueryResult
	res.rows, res.Err = p.dbase.DBQuery(query.generate())

	return res, nil
}

// InsertToDB marshals req.Args (via Convert, when an argument
// implements Convertible) and calls req.Script with them as
// positional arguments.
func (p Proxy) InsertToDB(req InsertReq) error {
	if p.dbase == nil {
		return ErrInvalidDB
	}

	argsAsStr := make([]string, 0, len(req.Args))
	for _, arg := range req.Args {
		raw, err := marshalInsertArg(arg)
		if err != nil {
			return ErrInvalidData
		}
		argsAsStr = append(argsAsStr, fmt.Sprintf("'%s'", string(raw)))
	}

	var query string
	if req.SkipReturn {
		query = fmt.Sprintf("SELECT %s(%s)", req.Script, strings.Join(argsAsStr, ", "))
	} else {
		query = fmt.Sprintf("SELECT * from %s(%s)", req.Script, strings.Join(argsAsStr, ", "))
	}

	_, err := p.dbase.DBExecute(query)
	return formatDBError(err)
}

// marshalInsertArg renders a single InsertToDB argument to the JSON
// that goes inside the quoted SQL literal. A bare string is passed
// through unmarshalled (re-marshalling it would double-quote it,
// breaking the SQL), a Convertible is reshaped first, and anything
// else is marshalled directly.
func marshalInsertArg(arg interface{}) ([]byte, error) {
	if cvrt, ok := arg.(Convertible); ok {
		return json.Marshal(cvrt.Convert())
	}
	if str, ok := arg.(string); ok {
		return []byte(str), nil
	}
	return json.Marshal(arg)
}
