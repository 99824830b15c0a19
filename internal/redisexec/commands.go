// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package redisexec

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

// cmdSet handles SET key value [EX seconds]. Unquoted extra args are
// intentionally joined into the value with spaces, shell-style; only a
// trailing "EX <n>" pair is peeled off as an expiration.
func cmdSet(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New(errors.RedisExec, "SET requires at least key and value arguments")
	}
	key := args[0]
	var expiration time.Duration
	value := strings.Join(args[1:], " ")
	if len(args) >= 4 && strings.EqualFold(args[len(args)-2], "EX") {
		seconds, err := strconv.Atoi(args[len(args)-1])
		if err != nil || seconds <= 0 {
			return "", errors.New(errors.RedisExec, "EX seconds argument must be a positive integer")
		}
		expiration = time.Duration(seconds) * time.Second
		value = strings.Join(args[1:len(args)-2], " ")
	}
	if err := c.Set(ctx, key, value, expiration).Err(); err != nil {
		return "", execErr(err)
	}
	return "OK", nil
}

func cmdGet(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "GET requires exactly one key argument")
	}
	value, err := c.Get(ctx, args[0]).Result()
	if err == redis.Nil {
		return fmt.Sprintf("Key %s not found", args[0]), nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Value for key %s: %s", args[0], value), nil
}

func cmdDel(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New(errors.RedisExec, "DEL requires at least one key argument")
	}
	deleted, err := c.Del(ctx, args...).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Deleted %d key(s)", deleted), nil
}

func cmdExists(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New(errors.RedisExec, "EXISTS requires at least one key argument")
	}
	count, err := c.Exists(ctx, args...).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("%d key(s) exist", count), nil
}

func cmdIncr(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "INCR requires exactly one key argument")
	}
	value, err := c.Incr(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Incremented key %s to %d", args[0], value), nil
}

func cmdIncrBy(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "INCRBY requires key and increment arguments")
	}
	increment, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", errors.New(errors.RedisExec, "INCRBY increment argument must be an integer")
	}
	value, err := c.IncrBy(ctx, args[0], increment).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Incremented key %s by %d to %d", args[0], increment, value), nil
}

func cmdDecr(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "DECR requires exactly one key argument")
	}
	value, err := c.Decr(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Decremented key %s to %d", args[0], value), nil
}

func cmdDecrBy(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "DECRBY requires key and decrement arguments")
	}
	decrement, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", errors.New(errors.RedisExec, "DECRBY decrement argument must be an integer")
	}
	value, err := c.DecrBy(ctx, args[0], decrement).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Decremented key %s by %d to %d", args[0], decrement, value), nil
}

func cmdExpire(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "EXPIRE requires key and seconds arguments")
	}
	seconds, err := strconv.Atoi(args[1])
	if err != nil || seconds <= 0 {
		return "", errors.New(errors.RedisExec, "EXPIRE seconds argument must be a positive integer")
	}
	ok, err := c.Expire(ctx, args[0], time.Duration(seconds)*time.Second).Result()
	if err != nil {
		return "", execErr(err)
	}
	outcome := "Failed"
	if ok {
		outcome = "Success"
	}
	return fmt.Sprintf("Set expiry on key %s to %d seconds: %s", args[0], seconds, outcome), nil
}

func cmdTTL(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "TTL requires exactly one key argument")
	}
	d, err := c.TTL(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	// go-redis keeps the sentinel replies as raw negative durations.
	switch d {
	case -2 * time.Nanosecond:
		return fmt.Sprintf("Key %s does not exist", args[0]), nil
	case -1 * time.Nanosecond:
		return fmt.Sprintf("Key %s has no expiration", args[0]), nil
	}
	return fmt.Sprintf("Time to live for key %s: %d seconds", args[0], int(d.Seconds())), nil
}

func cmdKeys(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "KEYS requires exactly one pattern argument")
	}
	keys, err := c.Keys(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Keys matching pattern %s: %s", args[0], renderList(keys)), nil
}

func cmdType(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "TYPE requires exactly one key argument")
	}
	keyType, err := c.Type(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Type of key %s: %s", args[0], keyType), nil
}

func cmdStrLen(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "STRLEN requires exactly one key argument")
	}
	length, err := c.StrLen(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Length of string at key %s: %d", args[0], length), nil
}

func cmdRename(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "RENAME requires old key and new key arguments")
	}
	if err := c.Rename(ctx, args[0], args[1]).Err(); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Renamed key %s to %s", args[0], args[1]), nil
}

func cmdFlushAll(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if err := c.FlushAll(ctx).Err(); err != nil {
		return "", execErr(err)
	}
	return "All keys have been flushed", nil
}

func cmdHSet(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) < 3 {
		return "", errors.New(errors.RedisExec, "HSET requires key, field and value arguments")
	}
	key, field := args[0], args[1]
	value := strings.Join(args[2:], " ")
	if err := c.HSet(ctx, key, field, value).Err(); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Set hash field %s in key %s to %s", field, key, value), nil
}

func cmdHGet(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "HGET requires key and field arguments")
	}
	value, err := c.HGet(ctx, args[0], args[1]).Result()
	if err == redis.Nil {
		return fmt.Sprintf("Field %s in key %s not found", args[1], args[0]), nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Value for field %s in key %s: %s", args[1], args[0], value), nil
}

func cmdLPush(ctx context.Context, c *redis.Client, args []string) (string, error) {
	return push(ctx, args, "LPUSH", func(key string, values []any) *redis.IntCmd {
		return c.LPush(ctx, key, values...)
	})
}

func cmdRPush(ctx context.Context, c *redis.Client, args []string) (string, error) {
	return push(ctx, args, "RPUSH", func(key string, values []any) *redis.IntCmd {
		return c.RPush(ctx, key, values...)
	})
}

func push(ctx context.Context, args []string, name string, do func(key string, values []any) *redis.IntCmd) (string, error) {
	if len(args) < 2 {
		return "", errors.Newf(errors.RedisExec, "%s requires key and at least one value", name)
	}
	values := make([]any, len(args)-1)
	for i, v := range args[1:] {
		values[i] = v
	}
	length, err := do(args[0], values).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Pushed %d value(s) to list %s, new length: %d", len(values), args[0], length), nil
}

func cmdLPop(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "LPOP requires exactly one key argument")
	}
	value, err := c.LPop(ctx, args[0]).Result()
	if err == redis.Nil {
		return fmt.Sprintf("No value popped from list %s (list is empty)", args[0]), nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Popped value %s from left of list %s", value, args[0]), nil
}

func cmdRPop(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "RPOP requires exactly one key argument")
	}
	value, err := c.RPop(ctx, args[0]).Result()
	if err == redis.Nil {
		return fmt.Sprintf("No value popped from list %s (list is empty)", args[0]), nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Popped value %s from right of list %s", value, args[0]), nil
}

func cmdLRange(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 3 {
		return "", errors.New(errors.RedisExec, "LRANGE requires key, start and stop arguments")
	}
	start, err1 := strconv.ParseInt(args[1], 10, 64)
	stop, err2 := strconv.ParseInt(args[2], 10, 64)
	if err1 != nil || err2 != nil {
		return "", errors.New(errors.RedisExec, "LRANGE start and stop must be integers")
	}
	values, err := c.LRange(ctx, args[0], start, stop).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Values in list %s from %d to %d: %s", args[0], start, stop, renderList(values)), nil
}

func cmdLLen(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "LLEN requires exactly one key argument")
	}
	length, err := c.LLen(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Length of list at key %s: %d", args[0], length), nil
}

func cmdLIndex(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New(errors.RedisExec, "LINDEX requires key and index arguments")
	}
	index, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", errors.New(errors.RedisExec, "LINDEX index must be an integer")
	}
	value, err := c.LIndex(ctx, args[0], index).Result()
	if err == redis.Nil {
		return fmt.Sprintf("No value found at index %d in list at key %s", index, args[0]), nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Value at index %d in list at key %s: %s", index, args[0], value), nil
}

func cmdLInsert(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 4 {
		return "", errors.New(errors.RedisExec, "LINSERT requires key, BEFORE/AFTER, pivot and value arguments")
	}
	where := strings.ToUpper(args[1])
	if where != "BEFORE" && where != "AFTER" {
		return "", errors.New(errors.RedisExec, "LINSERT where argument must be BEFORE or AFTER")
	}
	key, pivot, value := args[0], args[2], args[3]
	length, err := c.LInsert(ctx, key, where, pivot, value).Result()
	if err != nil {
		return "", execErr(err)
	}
	if length == -1 {
		return fmt.Sprintf("No pivot %s found in list at key %s", pivot, key), nil
	}
	return fmt.Sprintf("Inserted value %s %s %s in list at key %s, new length: %d",
		value, strings.ToLower(where), pivot, key, length), nil
}

func cmdLTrim(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 3 {
		return "", errors.New(errors.RedisExec, "LTRIM requires key, start and stop arguments")
	}
	start, err1 := strconv.ParseInt(args[1], 10, 64)
	stop, err2 := strconv.ParseInt(args[2], 10, 64)
	if err1 != nil || err2 != nil {
		return "", errors.New(errors.RedisExec, "LTRIM start and stop must be integers")
	}
	if err := c.LTrim(ctx, args[0], start, stop).Err(); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Trimmed list at key %s to range %d to %d", args[0], start, stop), nil
}

func cmdSAdd(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New(errors.RedisExec, "SADD requires key and at least one member")
	}
	members := make([]any, len(args)-1)
	for i, m := range args[1:] {
		members[i] = m
	}
	count, err := c.SAdd(ctx, args[0], members...).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Added %d new member(s) to set %s", count, args[0]), nil
}

func cmdSMembers(ctx context.Context, c *redis.Client, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New(errors.RedisExec, "SMEMBERS requires exactly one key argument")
	}
	members, err := c.SMembers(ctx, args[0]).Result()
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Members of set %s: %s", args[0], renderList(members)), nil
}

// renderList renders a string sequence as a bracketed, comma-joined list.
func renderList(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}

// stringify renders a scalar reply value.
func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
