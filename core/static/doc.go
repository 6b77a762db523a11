// Package static serves files from a directory or an fs.FS.
//
// Directory listing is disabled: a directory only resolves when it contains
// index.html, in which case that file is served.
//
//	h, err := static.Dir("./dist")
//	if err != nil {
//		return err
//	}
//	r.NotFound(h.ServeHTTP)
//
// Embedded assets work the same way:
//
//	//go:embed dist
//	var dist embed.FS
//
//	sub, _ := fs.Sub(dist, "dist")
//	r.NotFound(static.FS(sub).ServeHTTP)
package static
