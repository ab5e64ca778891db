// Command focuscam оценивает резкость и яркость кадров с камеры, разрешает
// снимок только при хороших значениях и отправляет его на сервер.
//
// Использование:
//
//	focuscam run
//	focuscam bot
//	focuscam assess photo.jpg
//	focuscam history
package main

func main() {
	Execute()
}
