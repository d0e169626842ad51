package booking

import (
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over a
// bare *sql.DB path and the metrics-wrapped one alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
