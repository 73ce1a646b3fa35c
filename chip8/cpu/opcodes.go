package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

const spriteWidth = 8

// CLS
// #0x00E0:
func opcode00E0(c *CPU, _ Opcode) error {
	c.display.Clear()
	return nil
}

// RET
// #0x00EE:
func opcode00EE(c *CPU, _ Opcode) error {
	address, err := c.stack.Pop()
	if err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// JP addr
// #0x1NNN:
func opcode1NNN(c *CPU, op Opcode) error {
	c.jump(op.NNN())
	return nil
}

// CALL addr
// #0x2NNN:
func opcode2NNN(c *CPU, op Opcode) error {
	if err := c.stack.Push(c.pc); err != nil {
		return err
	}
	c.jump(op.NNN())
	return nil
}

// SE Vx, byte
// #0x3XNN:
func opcode3XNN(c *CPU, op Opcode) error {
	c.skipIf(c.v[op.X()] == op.NN())
	return nil
}

// SNE Vx, byte
// #0x4XNN:
func opcode4XNN(c *CPU, op Opcode) error {
	c.skipIf(c.v[op.X()] != op.NN())
	return nil
}

// SE Vx, Vy
// #0x5XY0:
func opcode5XY0(c *CPU, op Opcode) error {
	c.skipIf(c.v[op.X()] == c.v[op.Y()])
	return nil
}

// LD Vx, byte
// #0x6XNN:
func opcode6XNN(c *CPU, op Opcode) error {
	c.v[op.X()] = op.NN()
	return nil
}

// ADD Vx, byte
// #0x7XNN:
func opcode7XNN(c *CPU, op Opcode) error {
	c.v[op.X()] += op.NN()
	return nil
}

// LD Vx, Vy
// #0x8XY0:
func opcode8XY0(c *CPU, op Opcode) error {
	c.v[op.X()] = c.v[op.Y()]
	return nil
}

// OR Vx, Vy
// #0x8XY1:
func opcode8XY1(c *CPU, op Opcode) error {
	c.v[op.X()] |= c.v[op.Y()]
	return nil
}

// AND Vx, Vy
// #0x8XY2:
func opcode8XY2(c *CPU, op Opcode) error {
	c.v[op.X()] &= c.v[op.Y()]
	return nil
}

// XOR Vx, Vy
// #0x8XY3:
func opcode8XY3(c *CPU, op Opcode) error {
	c.v[op.X()] ^= c.v[op.Y()]
	return nil
}

// The flag-setting ALU opcodes below write VF before Vx.
// When X or Y is F the order is observable, so it must not change.

// ADD Vx, Vy
// #0x8XY4:
func opcode8XY4(c *CPU, op Opcode) error {
	x, y := c.v[op.X()], c.v[op.Y()]
	c.v[0xF] = bit.Carry(x, y)
	c.v[op.X()] = x + y
	return nil
}

// SUB Vx, Vy
// #0x8XY5:
func opcode8XY5(c *CPU, op Opcode) error {
	c.v[0xF] = 0
	if c.v[op.X()] > c.v[op.Y()] {
		c.v[0xF] = 1
	}
	c.v[op.X()] -= c.v[op.Y()]
	return nil
}

// SHR Vx
// #0x8XY6:
func opcode8XY6(c *CPU, op Opcode) error {
	c.v[0xF] = bit.LSB(c.v[op.X()])
	c.v[op.X()] >>= 1
	return nil
}

// SUBN Vx, Vy
// #0x8XY7:
func opcode8XY7(c *CPU, op Opcode) error {
	c.v[0xF] = 0
	if c.v[op.Y()] > c.v[op.X()] {
		c.v[0xF] = 1
	}
	c.v[op.X()] = c.v[op.Y()] - c.v[op.X()]
	return nil
}

// SHL Vx
// #0x8XYE:
func opcode8XYE(c *CPU, op Opcode) error {
	c.v[0xF] = bit.MSB(c.v[op.X()])
	c.v[op.X()] <<= 1
	return nil
}

// SNE Vx, Vy
// #0x9XY0:
func opcode9XY0(c *CPU, op Opcode) error {
	c.skipIf(c.v[op.X()] != c.v[op.Y()])
	return nil
}

// LD I, addr
// #0xANNN:
func opcodeANNN(c *CPU, op Opcode) error {
	c.i = op.NNN()
	return nil
}

// JP V0, addr
// #0xBNNN:
func opcodeBNNN(c *CPU, op Opcode) error {
	c.jump(op.NNN() + uint16(c.v[0]))
	return nil
}

// RND Vx, byte
// #0xCXNN:
func opcodeCXNN(c *CPU, op Opcode) error {
	c.v[op.X()] = uint8(c.rng.Intn(256)) & op.NN()
	return nil
}

// DRW Vx, Vy, nibble
// #0xDXYN:
func opcodeDXYN(c *CPU, op Opcode) error {
	c.v[0xF] = 0
	x, y := int(c.v[op.X()]), int(c.v[op.Y()])

	for row := 0; row < int(op.N()); row++ {
		sprite := c.memory.Read(c.i + uint16(row))
		for col := 0; col < spriteWidth; col++ {
			if !bit.SpriteBit(sprite, col) {
				continue
			}
			px, py := x+col, y+row
			if px >= DisplayWidth || py >= DisplayHeight {
				continue
			}
			if c.display.SetPixel(px, py) {
				c.v[0xF] = 1
			}
		}
	}
	return nil
}

// SKP Vx
// #0xEX9E:
func opcodeEX9E(c *CPU, op Opcode) error {
	c.skipIf(c.keyPressed(c.v[op.X()]))
	return nil
}

// SKNP Vx
// #0xEXA1:
func opcodeEXA1(c *CPU, op Opcode) error {
	c.skipIf(!c.keyPressed(c.v[op.X()]))
	return nil
}

// LD Vx, DT
// #0xFX07:
func opcodeFX07(c *CPU, op Opcode) error {
	c.v[op.X()] = c.delayTimer
	return nil
}

// LD Vx, K
// #0xFX0A:
func opcodeFX0A(c *CPU, op Opcode) error {
	c.awaitKey(op.X())
	return nil
}

// LD DT, Vx
// #0xFX15:
func opcodeFX15(c *CPU, op Opcode) error {
	c.delayTimer = c.v[op.X()]
	return nil
}

// LD ST, Vx
// #0xFX18:
func opcodeFX18(c *CPU, op Opcode) error {
	c.soundTimer = c.v[op.X()]
	return nil
}

// ADD I, Vx
// #0xFX1E:
func opcodeFX1E(c *CPU, op Opcode) error {
	c.i = (c.i + uint16(c.v[op.X()])) & memory.AddressMask
	return nil
}

// LD F, Vx
// #0xFX29:
func opcodeFX29(c *CPU, op Opcode) error {
	c.i = memory.GlyphAddress(c.v[op.X()])
	return nil
}

// LD B, Vx
// #0xFX33:
func opcodeFX33(c *CPU, op Opcode) error {
	value := c.v[op.X()]
	c.memory.Write(c.i, value/100)
	c.memory.Write(c.i+1, (value/10)%10)
	c.memory.Write(c.i+2, value%10)
	return nil
}

// LD [I], Vx
// #0xFX55:
func opcodeFX55(c *CPU, op Opcode) error {
	for r := uint8(0); r <= op.X(); r++ {
		c.memory.Write(c.i+uint16(r), c.v[r])
	}
	return nil
}

// LD Vx, [I]
// #0xFX65:
func opcodeFX65(c *CPU, op Opcode) error {
	for r := uint8(0); r <= op.X(); r++ {
		c.v[r] = c.memory.Read(c.i + uint16(r))
	}
	return nil
}
