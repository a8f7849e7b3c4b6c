package main

import "github.com/feedbackloop/interviewd/cmd"

func main() {
	cmd.Execute()
}
