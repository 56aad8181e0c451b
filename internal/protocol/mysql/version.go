package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meoying/dbdriver/internal/errs"
)

// routerSuffix 集群网关（MySQL Router 一类）的版本串后缀，
// 这类网关自己报的版本号没有参考价值，放过最低版本检查
const routerSuffix = "-router"

// ServerVersion 从握手包的版本串里解析出来的服务端版本
type ServerVersion struct {
	Major int
	Minor int
	Patch int
	// Raw 原始版本串，例如 "8.4.0-log"
	Raw string
}

// parseServerVersion 版本串形如 "major.minor.patch-后缀"
func parseServerVersion(raw string) ServerVersion {
	v := ServerVersion{Raw: raw}
	rest := raw
	for i, part := range strings.SplitN(rest, ".", 3) {
		// patch 后面可能直接跟后缀，数字取到第一个非数字字符为止
		numEnd := len(part)
		for j, r := range part {
			if r < '0' || r > '9' {
				numEnd = j
				break
			}
		}
		n, err := strconv.Atoi(part[:numEnd])
		if err != nil {
			break
		}
		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}
	return v
}

// AtLeast 版本号不低于给定值
func (v ServerVersion) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// IsRouter 是不是集群网关变体
func (v ServerVersion) IsRouter() bool {
	return strings.HasSuffix(strings.ToLower(v.Raw), routerSuffix)
}

// checkVersion 网关变体放过最低版本检查，其余要求 5.0.0 以上
func checkVersion(v ServerVersion) error {
	if v.IsRouter() {
		return nil
	}
	if !v.AtLeast(5, 0, 0) {
		return fmt.Errorf("%w，版本 %s，最低要求 5.0.0", errs.ErrUnsupportedServer, v.Raw)
	}
	return nil
}
