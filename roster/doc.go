// Package roster loads student records from spreadsheet exports.
//
// A roster is a table whose header row names the columns
//
//	AD NO, Student Name, Batch, Quota, Dept, COMM, TYPE
//
// in any order and letter case. TYPE may be absent. Columns not listed
// are ignored and fully blank rows are skipped. XLSX workbooks (first
// sheet) and CSV files are accepted; legacy XLS is recognized and
// rejected with format.ErrUnsupported.
//
// Loading does not validate field contents. Call Validate before handing
// records to the generator, which assumes populated fields.
package roster
