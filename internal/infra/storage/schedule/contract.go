package schedule

import (
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
