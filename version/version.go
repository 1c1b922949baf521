package version

import (
	"fmt"
	"io"
	"runtime"
)

// 构建信息，通过-ldflags "-X github.com/dszqbsm/rankedfilms/version.Version=..."注入
var (
	BuildTS   = "None"
	GitHash   = "None"
	GitBranch = "None"
	Version   = "None"
)

// 格式化后的版本号，带上7位提交哈希
func GetVersion() string {
	if GitHash == "" {
		return Version
	}
	h := GitHash
	if len(h) > 7 {
		h = h[:7]
	}
	return Version + "-" + h
}

// 将版本号、分支、提交、构建时间和Go版本逐行打印到w
func Printer(w io.Writer) {
	rows := [][2]string{
		{"Version", GetVersion()},
		{"Git Branch", GitBranch},
		{"Git Commit", GitHash},
		{"Build Time (UTC)", BuildTS},
		{"Go Version", runtime.Version()},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-18s %s\n", r[0]+":", r[1])
	}
}
