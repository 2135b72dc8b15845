package remote

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func asRemote(err error, re **betbook.RemoteError) bool { return errors.As(err, re) }
