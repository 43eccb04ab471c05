package main

import (
	"math/rand"
	"strings"
)

var codeLetters = strings.Split("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz", "")

const roomCodeLength = 6

func GenerateRoomCode() string {
	code := ""
	for i := 0; i < roomCodeLength; i++ {
		index := rand.Intn(len(codeLetters))
		code += codeLetters[index]
	}
	return code
}
