package dto

// VersionDTO Server version information
// VersionDTO 服务端版本信息
type VersionDTO struct {
	Version        string `json:"version"`        // Current version // 当前版本号
	GitTag         string `json:"gitTag"`         // Git tag // Git 标签
	BuildTime      string `json:"buildTime"`      // Build time // 构建时间
	VersionIsNew   bool   `json:"versionIsNew"`   // Whether a newer version exists // 是否存在新版本
	VersionNewName string `json:"versionNewName"` // Newest version name // 新版本号
	VersionNewLink string `json:"versionNewLink"` // Newest version release link // 新版本发布链接
}
