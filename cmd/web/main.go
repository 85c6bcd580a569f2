// @title           Recruit API
// @version         1.0
// @description     API платформы подбора персонала: вакансии, отклики и воронка найма.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "recruit_backend/docs"
	"recruit_backend/internal/app"
)

func main() {
	app.Run()
}
