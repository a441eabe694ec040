// Package flossdex provides an embeddable Go client for the flossdex blend search:
// find the single flosses and blends of flosses that come closest to a reference
// floss, optionally restricted to a stored collection.
//
// Collections live in Valkey or Redis, or in process memory when no server is
// configured. Searches run in-process on a pool of workers.
//
//	client, _ := flossdex.New(ctx, flossdex.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Collections().Create(ctx, "reds", "321", "666", "817", "B5200")
//	res, _ := client.Nearest(ctx, "304",
//	    flossdex.InCollection("reds"),
//	    flossdex.MaxBlendSize(3),
//	    flossdex.Limit(5),
//	)
//	for _, g := range res.Groups {
//	    for _, n := range g.Neighbors {
//	        fmt.Println(g.BlendSize, n.Name, n.Distance)
//	    }
//	}
package flossdex
