package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// 生成用户名用的词表
var usernameAdjectives = []string{
	"brave", "calm", "clever", "eager", "gentle", "happy", "jolly", "kind",
	"lively", "merry", "nimble", "proud", "quick", "quiet", "sunny", "witty",
}

var usernameAnimals = []string{
	"badger", "crane", "dolphin", "falcon", "heron", "lynx", "marmot", "otter",
	"panda", "raven", "salmon", "tiger", "walrus", "weasel", "wolf", "wombat",
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPick(list []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}

	return list[n.Int64()], nil
}

// RandomUsername 生成一个不与 taken 中任何名字冲突的用户名
func RandomUsername(taken map[string]bool) (string, error) {
	for attempt := 0; attempt < 64; attempt++ {
		adjective, err := randomPick(usernameAdjectives)
		if err != nil {
			return "", err
		}

		animal, err := randomPick(usernameAnimals)
		if err != nil {
			return "", err
		}

		username := adjective + "_" + animal
		if !taken[username] {
			return username, nil
		}
	}

	// 词表组合接近耗尽时退回到 uuid 后缀，保证唯一
	for {
		adjective, err := randomPick(usernameAdjectives)
		if err != nil {
			return "", err
		}

		animal, err := randomPick(usernameAnimals)
		if err != nil {
			return "", err
		}

		username := fmt.Sprintf("%s_%s_%s", adjective, animal, uuid.NewString()[:8])
		if !taken[username] {
			return username, nil
		}
	}
}

// RandomPassword 生成指定长度的随机密码
func RandomPassword(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		sb.WriteByte(passwordCharset[n.Int64()])
	}

	return sb.String(), nil
}
