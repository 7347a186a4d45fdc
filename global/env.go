package global

import (
	"github.com/haierkeys/smart-mark-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT          string
	Name          string = "SmartMark Service"
	WebClientName string = "Web"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
