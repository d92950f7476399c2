// Package reqifxml renders a domain.Document as ReqIF XML.
//
// The element tree is written token by token in the fixed order the
// interchange schema requires, so no struct tags or reflection are involved.
// The whole document is produced in memory; callers hand the bytes to a
// sink only after Marshal succeeds.
package reqifxml
