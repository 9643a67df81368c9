package testing

import (
	"os"
	"path"
	"runtime"
)

// Importing this package for side effects moves the working directory to the
// module root, so fixtures under seed/ and logs/ resolve the same way in every
// package's tests:
//
//	import _ "agroalert.dev/dashboard-service/pkg/testing"
func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
}
