package main

import "github.com/emotiondetector/emotiondetector/cmd"

func main() {
	cmd.Execute()
}
