package segment

import "context"

type Resolver[K Key] interface {
	// resolves the closed key range [lo, hi] from a datasource
	// like array, SQL etc
	Resolve(ctx context.Context, lo K, hi K) (RawData, error)
}
