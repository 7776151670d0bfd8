// @title           Smart Cowork API
// @version         1.0
// @description     Workplace collaboration API server: data-collection
// @description     requests, work approvals, documents and the AI work calendar.
// @BasePath  /api/v1
package main

import "github.com/smartcowork/cowork-gin/cmd"

func main() {
	cmd.Execute()
}
