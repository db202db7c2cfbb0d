// @title           JobHive API
// @version         1.0
// @description     REST API доски вакансий: рекрутеры публикуют вакансии, соискатели откликаются.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "jobhive_backend/internal/app"

func main() {
	app.Run()
}
